package service

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
)

// Hold mirrors the processor-side view of a card authorization.
type Hold struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Status       string
}

// HoldReady is the processor status meaning funds are reserved and waiting
// for an explicit capture.
const HoldReady = string(stripe.PaymentIntentStatusRequiresCapture)

// HoldParams describes the hold to create. Metadata travels to the
// processor dashboard for manual reconciliation.
type HoldParams struct {
	AmountCents  int64
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
}

// PaymentGateway is the seam between the settlement logic and the payment
// processor. StripeService is the production implementation; tests inject a
// fake. Idempotency keys make a manually re-triggered call safe after a
// network failure of unknown outcome.
type PaymentGateway interface {
	CreateHold(params HoldParams) (*Hold, error)
	GetHold(id string) (*Hold, error)
	// Capture converts the hold into a charge, optionally for less than the
	// authorized amount. Returns the processor's reference for the audit log.
	Capture(id string, amountCents int64, idempotencyKey string) (string, error)
	// Refund returns captured funds to the guest's card.
	Refund(id string, amountCents int64, idempotencyKey string) (string, error)
	// Cancel releases a hold without moving funds.
	Cancel(id string) (string, error)
}

type StripeService struct{}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{}
}

func (s *StripeService) CreateHold(params HoldParams) (*Hold, error) {
	piParams := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(params.AmountCents),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Description:   stripe.String(params.Description),
	}
	if params.ReceiptEmail != "" {
		piParams.ReceiptEmail = stripe.String(params.ReceiptEmail)
	}
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(piParams)
	if err != nil {
		return nil, fmt.Errorf("error creating payment hold: %w", err)
	}
	return holdFromIntent(pi), nil
}

func (s *StripeService) GetHold(id string) (*Hold, error) {
	pi, err := paymentintent.Get(id, nil)
	if err != nil {
		return nil, fmt.Errorf("error retrieving payment hold %s: %w", id, err)
	}
	return holdFromIntent(pi), nil
}

func (s *StripeService) Capture(id string, amountCents int64, idempotencyKey string) (string, error) {
	params := &stripe.PaymentIntentCaptureParams{
		AmountToCapture: stripe.Int64(amountCents),
	}
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	pi, err := paymentintent.Capture(id, params)
	if err != nil {
		return "", fmt.Errorf("error capturing payment %s: %w", id, err)
	}
	return pi.ID, nil
}

func (s *StripeService) Refund(id string, amountCents int64, idempotencyKey string) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(id),
		Amount:        stripe.Int64(amountCents),
	}
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	r, err := refund.New(params)
	if err != nil {
		return "", fmt.Errorf("error refunding payment %s: %w", id, err)
	}
	return r.ID, nil
}

func (s *StripeService) Cancel(id string) (string, error) {
	pi, err := paymentintent.Cancel(id, nil)
	if err != nil {
		return "", fmt.Errorf("error cancelling payment hold %s: %w", id, err)
	}
	return pi.ID, nil
}

func holdFromIntent(pi *stripe.PaymentIntent) *Hold {
	return &Hold{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Status:       string(pi.Status),
	}
}
