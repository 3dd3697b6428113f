package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
	apperrors "spacecityrentals/internal/errors"
	"spacecityrentals/internal/repository"
)

type BookingService struct {
	store    repository.Store
	notify   *NotifyService
	location *time.Location
}

func NewBookingService(store repository.Store, notify *NotifyService, location *time.Location) *BookingService {
	return &BookingService{store: store, notify: notify, location: location}
}

// today returns the operator's local calendar day, not UTC, so the
// midnight boundary matches what the guest was shown.
func (s *BookingService) today() string {
	return time.Now().In(s.location).Format("2006-01-02")
}

// ValidateDraft runs the field rules against a guest draft, resolving the
// vehicle slug against the catalog. An empty map means the draft is valid.
func (s *BookingService) ValidateDraft(draft entities.BookingDraft) (map[string]string, *db.Vehicle, error) {
	var vehicle *db.Vehicle
	if draft.VehicleSlug != "" {
		v, err := s.store.Vehicles.GetBySlug(draft.VehicleSlug)
		if err != nil && !errors.Is(err, repository.ErrNoRows) {
			return nil, nil, fmt.Errorf("error resolving vehicle: %w", err)
		}
		if v != nil && v.IsActive {
			vehicle = v
		}
	}
	errs := ValidateBookingDraft(BookingDraftFields{
		VehicleSlug:   draft.VehicleSlug,
		GuestName:     draft.GuestName,
		GuestEmail:    draft.GuestEmail,
		GuestPhone:    draft.GuestPhone,
		StartDate:     draft.StartDate,
		EndDate:       draft.EndDate,
		TermsAccepted: draft.TermsAccepted,
	}, vehicle != nil, s.today())
	return errs, vehicle, nil
}

// CreateBooking persists a validated draft directly, with no payment fields
// populated. This is the first-class path when the payment processor is not
// configured; with payments enabled the booking row is created by
// PaymentService.MaterializeBooking instead.
func (s *BookingService) CreateBooking(draft entities.BookingDraft, vehicle *db.Vehicle) (*db.Booking, error) {
	code, err := NewConfirmationCode()
	if err != nil {
		return nil, err
	}
	booking := &db.Booking{
		ConfirmationCode: code,
		VehicleID:        vehicle.ID,
		GuestName:        draft.GuestName,
		GuestEmail:       draft.GuestEmail,
		GuestPhone:       draft.GuestPhone,
		StartDate:        draft.StartDate,
		EndDate:          draft.EndDate,
		Status:           db.BookingStatusPending,
		TermsAccepted:    draft.TermsAccepted,
		PaymentStatus:    db.PaymentStatusNone,
	}
	if err := s.store.Bookings.Create(booking); err != nil {
		log.Printf("Error creating booking: %v", err)
		return nil, err
	}
	return booking, nil
}

// GetBookingByCode looks a booking up by its confirmation code,
// case-insensitively.
func (s *BookingService) GetBookingByCode(code string) (*db.Booking, error) {
	b, err := s.store.Bookings.GetByCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound()
		}
		return nil, err
	}
	return b, nil
}

// ListBookingsByEmail returns a guest's bookings, newest first.
func (s *BookingService) ListBookingsByEmail(email string) ([]db.Booking, error) {
	return s.store.Bookings.ListByEmail(email)
}

// ListBookings returns all bookings for the admin table, optionally
// filtered by status.
func (s *BookingService) ListBookings(statusFilter string) ([]db.Booking, error) {
	return s.store.Bookings.List(statusFilter)
}

var adminStatuses = map[string]bool{
	db.BookingStatusPending:  true,
	db.BookingStatusApproved: true,
	db.BookingStatusDeclined: true,
}

// UpdateStatus applies an admin approve/decline (or correction back).
// Notes are tri-state: omitted keeps existing notes, explicit null clears
// them, a value overwrites them. Re-applying the same status is allowed and
// idempotent in effect. Returns the updated booking plus pre-filled guest
// contact actions for the admin to send.
func (s *BookingService) UpdateStatus(id, status string, notes entities.OptionalString) (*db.Booking, *entities.GuestContactActions, error) {
	if !adminStatuses[status] {
		return nil, nil, apperrors.NewHTTPError(400, "unknown booking status: "+status)
	}

	previous, err := s.store.Bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, nil, apperrors.ErrBookingNotFound()
		}
		return nil, nil, err
	}

	booking, err := s.store.Bookings.UpdateStatus(id, status, notes)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, nil, apperrors.ErrBookingNotFound()
		}
		return nil, nil, err
	}

	// The rental counter ticks once per approval, not on corrections.
	if status == db.BookingStatusApproved && previous.Status != db.BookingStatusApproved {
		if err := s.store.Vehicles.IncrementRentalCount(booking.VehicleID); err != nil {
			log.Printf("Error incrementing rental count for vehicle %s: %v", booking.VehicleID, err)
		}
	}

	actions := s.notify.ContactActions(booking, status)
	s.notify.SendStatusUpdate(booking, status)

	return booking, actions, nil
}

// PaymentEvents returns the append-only audit trail for a booking.
func (s *BookingService) PaymentEvents(bookingID string) ([]db.PaymentEvent, error) {
	if _, err := s.store.Bookings.GetByID(bookingID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound()
		}
		return nil, err
	}
	return s.store.PaymentEvents.ListByBooking(bookingID)
}

// AdminStats backs the dashboard header counts.
type AdminStats struct {
	TotalBookings   int `json:"total_bookings"`
	PendingBookings int `json:"pending_bookings"`
	ActiveVehicles  int `json:"active_vehicles"`
}

func (s *BookingService) Stats() (*AdminStats, error) {
	total, err := s.store.Bookings.CountAll()
	if err != nil {
		return nil, err
	}
	pending, err := s.store.Bookings.CountByStatus(db.BookingStatusPending)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.store.Vehicles.CountActive()
	if err != nil {
		return nil, err
	}
	return &AdminStats{TotalBookings: total, PendingBookings: pending, ActiveVehicles: vehicles}, nil
}
