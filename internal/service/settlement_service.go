package service

import (
	"errors"
	"fmt"
	"log"

	"spacecityrentals/internal/db"
	apperrors "spacecityrentals/internal/errors"
	"spacecityrentals/internal/repository"
)

// SettlementService owns the admin-triggered capture, refund, and hold
// release operations. Each call is one-shot: processor failures surface to
// the admin, who re-triggers manually; the idempotency key makes the retry
// safe. Processor writes happen before local writes, so a crash between the
// two leaves processor truth ahead of the local record — the reconciliation
// job closes that window.
type SettlementService struct {
	store   repository.Store
	gateway PaymentGateway
}

func NewSettlementService(store repository.Store, gateway PaymentGateway) *SettlementService {
	return &SettlementService{store: store, gateway: gateway}
}

func (s *SettlementService) getBooking(id string) (*db.Booking, error) {
	b, err := s.store.Bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound()
		}
		return nil, err
	}
	return b, nil
}

// Capture converts an authorized hold into a charge. amountCents nil means
// the full authorized total; a partial capture must not exceed it.
func (s *SettlementService) Capture(bookingID string, amountCents *int64) (*db.Booking, error) {
	booking, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus != db.PaymentStatusAuthorized || booking.StripePaymentIntentID == nil {
		return nil, apperrors.ErrInvalidPaymentState(booking.PaymentStatus)
	}

	amount := booking.TotalAmountCents
	if amountCents != nil {
		amount = *amountCents
	}
	if amount <= 0 || amount > booking.TotalAmountCents {
		return nil, apperrors.NewHTTPError(400, fmt.Sprintf("capture amount must be between 1 and %d cents", booking.TotalAmountCents))
	}

	eventID, err := s.gateway.Capture(*booking.StripePaymentIntentID, amount, "capture-"+booking.ID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Bookings.SetCaptured(booking.ID, amount); err != nil {
		log.Printf("Capture succeeded at processor but local update failed for booking %s: %v", booking.ID, err)
		return nil, err
	}
	s.appendEvent(booking.ID, db.EventCaptured, &amount, eventID, nil)

	return s.getBooking(bookingID)
}

// Refund returns captured funds. amountCents nil means the remaining
// refundable balance. The cumulative refund can never exceed the captured
// amount; crossing the full amount flips the status to refunded, anything
// less lands on partially_refunded.
func (s *SettlementService) Refund(bookingID string, amountCents *int64) (*db.Booking, error) {
	booking, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.StripePaymentIntentID == nil ||
		(booking.PaymentStatus != db.PaymentStatusCaptured && booking.PaymentStatus != db.PaymentStatusPartiallyRefunded) {
		return nil, apperrors.ErrInvalidPaymentState(booking.PaymentStatus)
	}

	captured := int64(0)
	if booking.CapturedAmountCents != nil {
		captured = *booking.CapturedAmountCents
	}
	remaining := captured - booking.RefundedAmountCents

	amount := remaining
	if amountCents != nil {
		amount = *amountCents
	}
	if amount <= 0 {
		return nil, apperrors.NewHTTPError(400, "refund amount must be positive")
	}
	if amount > remaining {
		return nil, apperrors.ErrRefundExceedsBalance()
	}

	eventID, err := s.gateway.Refund(*booking.StripePaymentIntentID, amount,
		fmt.Sprintf("refund-%s-%d", booking.ID, booking.RefundedAmountCents+amount))
	if err != nil {
		return nil, err
	}

	newTotal := booking.RefundedAmountCents + amount
	status := db.PaymentStatusPartiallyRefunded
	eventType := db.EventPartialRefund
	if newTotal >= captured {
		status = db.PaymentStatusRefunded
		eventType = db.EventRefunded
	}

	if err := s.store.Bookings.SetRefunded(booking.ID, status, newTotal); err != nil {
		log.Printf("Refund succeeded at processor but local update failed for booking %s: %v", booking.ID, err)
		return nil, err
	}
	s.appendEvent(booking.ID, eventType, &amount, eventID, nil)

	return s.getBooking(bookingID)
}

// CancelHold releases an authorized hold without capturing funds.
func (s *SettlementService) CancelHold(bookingID string) (*db.Booking, error) {
	booking, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus != db.PaymentStatusAuthorized || booking.StripePaymentIntentID == nil {
		return nil, apperrors.ErrInvalidPaymentState(booking.PaymentStatus)
	}

	eventID, err := s.gateway.Cancel(*booking.StripePaymentIntentID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Bookings.SetPaymentStatus(booking.ID, db.PaymentStatusCancelled); err != nil {
		log.Printf("Cancel succeeded at processor but local update failed for booking %s: %v", booking.ID, err)
		return nil, err
	}
	s.appendEvent(booking.ID, db.EventCancelled, nil, eventID, nil)

	return s.getBooking(bookingID)
}

func (s *SettlementService) appendEvent(bookingID, eventType string, amountCents *int64, stripeEventID string, metadata map[string]string) {
	if err := s.store.PaymentEvents.Append(&db.PaymentEvent{
		BookingID:     bookingID,
		EventType:     eventType,
		AmountCents:   amountCents,
		StripeEventID: stripeEventID,
		Metadata:      metadata,
	}); err != nil {
		log.Printf("Error appending %s event for booking %s: %v", eventType, bookingID, err)
	}
}
