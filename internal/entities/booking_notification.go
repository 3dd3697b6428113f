package entities

// GuestContactActions are the pre-filled contact options offered to the
// admin after a booking status change. Bodies vary by action (approve vs
// decline) and embed the guest's first name, the vehicle, the date range
// and the status-lookup URL keyed by confirmation code.
type GuestContactActions struct {
	GuestPhone   string `json:"guest_phone"`
	GuestEmail   string `json:"guest_email"`
	SMSBody      string `json:"sms_body"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
	StatusURL    string `json:"status_url"`
}
