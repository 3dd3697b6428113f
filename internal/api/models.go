package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"spacecityrentals/internal/db"
	apperrors "spacecityrentals/internal/errors"
)

// Booking
type BookingResponse struct {
	ID               string    `json:"id"`
	ConfirmationCode string    `json:"confirmation_code"`
	VehicleID        string    `json:"vehicle_id"`
	VehicleName      string    `json:"vehicle_name,omitempty"`
	VehicleSlug      string    `json:"vehicle_slug,omitempty"`
	GuestName        string    `json:"guest_name"`
	GuestEmail       string    `json:"guest_email"`
	GuestPhone       string    `json:"guest_phone"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	Status           string    `json:"status"`
	AdminNotes       *string   `json:"admin_notes"`
	TermsAccepted    bool      `json:"terms_accepted"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	StripePaymentIntentID *string `json:"stripe_payment_intent_id,omitempty"`
	PaymentStatus         string  `json:"payment_status"`
	TotalAmountCents      int64   `json:"total_amount_cents"`
	SecurityDepositCents  int64   `json:"security_deposit_cents"`
	CapturedAmountCents   *int64  `json:"captured_amount_cents"`
	RefundedAmountCents   int64   `json:"refunded_amount_cents"`
}

func toBookingResponse(b *db.Booking) BookingResponse {
	return BookingResponse{
		ID:                    b.ID,
		ConfirmationCode:      b.ConfirmationCode,
		VehicleID:             b.VehicleID,
		VehicleName:           b.VehicleName,
		VehicleSlug:           b.VehicleSlug,
		GuestName:             b.GuestName,
		GuestEmail:            b.GuestEmail,
		GuestPhone:            b.GuestPhone,
		StartDate:             b.StartDate,
		EndDate:               b.EndDate,
		Status:                b.Status,
		AdminNotes:            b.AdminNotes,
		TermsAccepted:         b.TermsAccepted,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
		StripePaymentIntentID: b.StripePaymentIntentID,
		PaymentStatus:         b.PaymentStatus,
		TotalAmountCents:      b.TotalAmountCents,
		SecurityDepositCents:  b.SecurityDepositCents,
		CapturedAmountCents:   b.CapturedAmountCents,
		RefundedAmountCents:   b.RefundedAmountCents,
	}
}

func toBookingResponses(bookings []db.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}

// Vehicle
type VehicleResponse struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Headline        string    `json:"headline"`
	Description     string    `json:"description"`
	DailyPriceCents int64     `json:"daily_price_cents"`
	Images          []string  `json:"images"`
	ExperienceTags  []string  `json:"experience_tags"`
	RentalCount     int       `json:"rental_count"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toVehicleResponse(v *db.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID,
		Slug:            v.Slug,
		Name:            v.Name,
		Headline:        v.Headline,
		Description:     v.Description,
		DailyPriceCents: v.DailyPriceCents,
		Images:          v.Images,
		ExperienceTags:  v.ExperienceTags,
		RentalCount:     v.RentalCount,
		IsActive:        v.IsActive,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// PaymentEvent
type PaymentEventResponse struct {
	ID            string            `json:"id"`
	BookingID     string            `json:"booking_id"`
	EventType     string            `json:"event_type"`
	AmountCents   *int64            `json:"amount_cents"`
	StripeEventID string            `json:"stripe_event_id"`
	Metadata      map[string]string `json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
}

// writeJSON encodes v with the proper content type.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps service errors onto JSON error responses, preserving the
// HTTP status carried by an HTTPError and defaulting everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// writeValidationErrors reports per-field validation failures.
func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}
