package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"spacecityrentals/internal/service"
)

// StripeWebhookHandler absorbs out-of-band processor events: holds that
// expired or were cancelled on the Stripe side, and refunds issued from the
// Stripe dashboard. Application-initiated changes already updated the local
// record, so the applied updates are written to be idempotent.
type StripeWebhookHandler struct {
	WebhookSecret string
	jobs          *service.JobService
}

func NewStripeWebhookHandler(webhookSecret string, jobs *service.JobService) *StripeWebhookHandler {
	return &StripeWebhookHandler{WebhookSecret: webhookSecret, jobs: jobs}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading webhook body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.WebhookSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "payment_intent.canceled":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			log.Printf("Error parsing payment_intent.canceled: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := h.jobs.ApplyExternalCancel(pi.ID, event.ID); err != nil {
			log.Printf("Error applying external cancel for intent %s: %v", pi.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			log.Printf("Error parsing charge.refunded: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
			break
		}
		if err := h.jobs.ApplyExternalRefund(charge.PaymentIntent.ID, event.ID, charge.AmountRefunded); err != nil {
			log.Printf("Error applying external refund for intent %s: %v", charge.PaymentIntent.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

	default:
		log.Printf("Unhandled webhook event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
