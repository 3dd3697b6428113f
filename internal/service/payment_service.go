package service

import (
	"errors"
	"fmt"
	"log"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
	apperrors "spacecityrentals/internal/errors"
	"spacecityrentals/internal/repository"
)

// PaymentService orchestrates the card-authorization flow: a manual-capture
// hold sized to rental plus deposit, and the conversion of a confirmed hold
// into a persisted booking. Card confirmation itself (3-D Secure and
// friends) happens in the browser against the processor's client library;
// this service only sees the before and after.
type PaymentService struct {
	store        repository.Store
	gateway      PaymentGateway
	depositCents int64
}

func NewPaymentService(store repository.Store, gateway PaymentGateway, depositCents int64) *PaymentService {
	return &PaymentService{store: store, gateway: gateway, depositCents: depositCents}
}

// CreateHold recomputes the rental amount server-side from the vehicle's
// canonical price — a tampered client-side total is never charged — adds the
// flat security deposit, and reserves the total on the guest's card without
// capturing it.
func (s *PaymentService) CreateHold(draft entities.BookingDraft) (*entities.HoldResult, error) {
	vehicle, err := s.store.Vehicles.GetBySlug(draft.VehicleSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ErrVehicleNotFound()
		}
		return nil, err
	}

	days := RentalDays(draft.StartDate, draft.EndDate)
	if days < 1 {
		days = 1
	}
	rentalCents := vehicle.DailyPriceCents * int64(days)
	totalCents := rentalCents + s.depositCents

	hold, err := s.gateway.CreateHold(HoldParams{
		AmountCents:  totalCents,
		Description:  fmt.Sprintf("Space City Rentals - %s (%s to %s)", vehicle.Name, draft.StartDate, draft.EndDate),
		ReceiptEmail: draft.GuestEmail,
		Metadata: map[string]string{
			"vehicle_id":  vehicle.ID,
			"start_date":  draft.StartDate,
			"end_date":    draft.EndDate,
			"guest_name":  draft.GuestName,
			"guest_email": draft.GuestEmail,
		},
	})
	if err != nil {
		return nil, err
	}

	return &entities.HoldResult{
		HoldReference:        hold.ID,
		ClientSecret:         hold.ClientSecret,
		TotalAmountCents:     totalCents,
		RentalAmountCents:    rentalCents,
		SecurityDepositCents: s.depositCents,
	}, nil
}

// MaterializeBooking turns a confirmed hold into a booking row. The
// processor must report the hold as authorized-and-awaiting-capture; the
// persisted total comes from the processor's authorized amount, not from
// anything the client claims.
func (s *PaymentService) MaterializeBooking(holdReference string, draft entities.BookingDraft) (*db.Booking, error) {
	hold, err := s.gateway.GetHold(holdReference)
	if err != nil {
		return nil, err
	}
	if hold.Status != HoldReady {
		return nil, apperrors.ErrAuthorizationNotReady(hold.Status)
	}

	vehicle, err := s.store.Vehicles.GetBySlug(draft.VehicleSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ErrVehicleNotFound()
		}
		return nil, err
	}

	code, err := NewConfirmationCode()
	if err != nil {
		return nil, err
	}
	intentID := hold.ID
	booking := &db.Booking{
		ConfirmationCode:      code,
		VehicleID:             vehicle.ID,
		GuestName:             draft.GuestName,
		GuestEmail:            draft.GuestEmail,
		GuestPhone:            draft.GuestPhone,
		StartDate:             draft.StartDate,
		EndDate:               draft.EndDate,
		Status:                db.BookingStatusPending,
		TermsAccepted:         draft.TermsAccepted,
		StripePaymentIntentID: &intentID,
		PaymentStatus:         db.PaymentStatusAuthorized,
		TotalAmountCents:      hold.AmountCents,
		SecurityDepositCents:  s.depositCents,
	}
	if err := s.store.Bookings.Create(booking); err != nil {
		log.Printf("Error materializing booking for hold %s: %v", holdReference, err)
		return nil, err
	}

	amount := hold.AmountCents
	if err := s.store.PaymentEvents.Append(&db.PaymentEvent{
		BookingID:     booking.ID,
		EventType:     db.EventAuthorized,
		AmountCents:   &amount,
		StripeEventID: hold.ID,
		Metadata: map[string]string{
			"vehicle_id": vehicle.ID,
			"start_date": draft.StartDate,
			"end_date":   draft.EndDate,
		},
	}); err != nil {
		// The booking exists and processor truth is intact; the missing
		// audit row is picked up by the reconciliation sweep.
		log.Printf("Error appending authorized event for booking %s: %v", booking.ID, err)
	}

	return booking, nil
}
