package api

import (
	"encoding/json"
	"net/http"

	"spacecityrentals/internal/entities"
	"spacecityrentals/internal/service"
)

type PaymentHandler struct {
	Payments *service.PaymentService
	Bookings *service.BookingService
}

func NewPaymentHandler(payments *service.PaymentService, bookings *service.BookingService) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Bookings: bookings}
}

// CreateHold validates the draft and reserves rental + deposit on the
// guest's card with manual capture. The client secret in the response is
// what the browser hands to Stripe.js for card confirmation.
func (h *PaymentHandler) CreateHold(w http.ResponseWriter, r *http.Request) {
	var draft entities.BookingDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	errs, _, err := h.Bookings.ValidateDraft(draft)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	hold, err := h.Payments.CreateHold(draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hold)
}

type confirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	entities.BookingDraft
}

// ConfirmBooking materializes a booking from a card-confirmed hold.
func (h *PaymentHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	if req.PaymentIntentID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payment_intent_id required"})
		return
	}

	booking, err := h.Payments.MaterializeBooking(req.PaymentIntentID, req.BookingDraft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}
