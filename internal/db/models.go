package db

import "time"

// Booking statuses managed by the admin back-office. "completed" and
// "cancelled" exist in the schema but no transition reaches them yet.
const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusDeclined = "declined"
)

// Payment statuses tracked against the Stripe hold lifecycle.
const (
	PaymentStatusNone              = "none"
	PaymentStatusAuthorized        = "authorized"
	PaymentStatusCaptured          = "captured"
	PaymentStatusCancelled         = "cancelled"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

// Payment event types. One row is appended per lifecycle transition,
// never updated or deleted.
const (
	EventAuthorized    = "authorized"
	EventCaptured      = "captured"
	EventCancelled     = "cancelled"
	EventRefunded      = "refunded"
	EventPartialRefund = "partial_refund"
	EventFailed        = "failed"
)

type Vehicle struct {
	ID              string
	Slug            string
	Name            string
	Headline        string
	Description     string
	DailyPriceCents int64
	Images          []string
	ExperienceTags  []string
	RentalCount     int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Booking dates are ISO YYYY-MM-DD strings. Lexicographic order matches
// chronological order for that format, which the validator relies on.
type Booking struct {
	ID               string
	ConfirmationCode string
	VehicleID        string
	GuestName        string
	GuestEmail       string
	GuestPhone       string
	StartDate        string
	EndDate          string
	Status           string
	AdminNotes       *string
	TermsAccepted    bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	StripePaymentIntentID *string
	PaymentStatus         string
	TotalAmountCents      int64
	SecurityDepositCents  int64
	CapturedAmountCents   *int64
	RefundedAmountCents   int64

	// Joined from vehicles on read paths, not columns of bookings.
	VehicleName string
	VehicleSlug string
}

type PaymentEvent struct {
	ID            string
	BookingID     string
	EventType     string
	AmountCents   *int64
	StripeEventID string
	Metadata      map[string]string
	CreatedAt     time.Time
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}
