package entities

// HoldResult is returned when a manual-capture hold has been created with
// the payment processor. ClientSecret is handed to the browser so Stripe.js
// can run the card confirmation step; nothing is persisted yet.
type HoldResult struct {
	HoldReference        string `json:"payment_intent_id"`
	ClientSecret         string `json:"client_secret"`
	TotalAmountCents     int64  `json:"total_amount_cents"`
	RentalAmountCents    int64  `json:"rental_amount_cents"`
	SecurityDepositCents int64  `json:"security_deposit_cents"`
}
