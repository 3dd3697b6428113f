package entities

// BookingDraft carries the guest-submitted fields of the booking form.
// Dates are ISO YYYY-MM-DD strings.
type BookingDraft struct {
	VehicleSlug   string `json:"vehicle_slug"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	GuestPhone    string `json:"guest_phone"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TermsAccepted bool   `json:"terms_accepted"`
}
