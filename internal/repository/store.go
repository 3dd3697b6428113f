package repository

import (
	"errors"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
)

// ErrNoRows is returned by lookups that found no matching record,
// regardless of backing store.
var ErrNoRows = errors.New("no rows found")

// The store interfaces are the seam between the lifecycle logic and the
// backing data store. Two implementations exist: repository/postgres for a
// configured database and repository/memory with fixture data for demo
// mode and tests. The choice is made once at startup; nothing downstream
// branches on it.

type VehicleStore interface {
	ListActive() ([]db.Vehicle, error)
	GetBySlug(slug string) (*db.Vehicle, error)
	GetByID(id string) (*db.Vehicle, error)
	Create(v *db.Vehicle) error
	Update(v *db.Vehicle) error
	Deactivate(id string) error
	IncrementRentalCount(id string) error
	CountActive() (int, error)
}

type BookingStore interface {
	Create(b *db.Booking) error
	GetByID(id string) (*db.Booking, error)
	// GetByCode matches the confirmation code case-insensitively.
	GetByCode(code string) (*db.Booking, error)
	// ListByEmail matches the guest email case-insensitively, newest first.
	ListByEmail(email string) ([]db.Booking, error)
	// List returns all bookings newest first, optionally filtered by status.
	List(statusFilter string) ([]db.Booking, error)
	// UpdateStatus applies a status change. Notes follow tri-state
	// semantics: unset keeps existing notes, null clears them.
	UpdateStatus(id, status string, notes entities.OptionalString) (*db.Booking, error)
	// SetCaptured records a capture: payment_status=captured plus amount.
	SetCaptured(id string, amountCents int64) error
	// SetRefunded records the new cumulative refund total and resulting status.
	SetRefunded(id, paymentStatus string, refundedTotalCents int64) error
	SetPaymentStatus(id, paymentStatus string) error
	// ApprovedOverlapping returns vehicle ids with an approved booking whose
	// [start_date, end_date] contains the given ISO date, inclusive.
	ApprovedOverlapping(date string) ([]string, error)
	// ListByPaymentStatus supports the reconciliation sweep.
	ListByPaymentStatus(paymentStatus string) ([]db.Booking, error)
	GetByPaymentIntentID(paymentIntentID string) (*db.Booking, error)
	CountAll() (int, error)
	CountByStatus(status string) (int, error)
}

type PaymentEventStore interface {
	// Append inserts an audit row. Events are never updated or deleted.
	Append(e *db.PaymentEvent) error
	ListByBooking(bookingID string) ([]db.PaymentEvent, error)
}

type AdminStore interface {
	GetByEmail(email string) (*db.Admin, error)
	Create(email, passwordHash string) error
}

// Store bundles the per-entity stores selected at startup.
type Store struct {
	Vehicles      VehicleStore
	Bookings      BookingStore
	PaymentEvents PaymentEventStore
	Admins        AdminStore
}
