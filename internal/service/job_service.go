package service

import (
	"errors"
	"fmt"
	"log"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/repository"
)

// JobService runs the periodic reconciliation sweep. Settlement writes the
// processor first and the local record second, so a crash or network
// failure between the two leaves the local record behind processor truth;
// the sweep re-reads every authorized hold from the processor and repairs
// the divergence. It also catches holds the processor expired or a guest
// abandoned mid-confirmation.
type JobService struct {
	store   repository.Store
	gateway PaymentGateway
}

func NewJobService(store repository.Store, gateway PaymentGateway) *JobService {
	return &JobService{store: store, gateway: gateway}
}

// ReconcileAuthorizedHolds syncs bookings whose local payment status is
// still "authorized" against the processor.
func (s *JobService) ReconcileAuthorizedHolds() error {
	log.Println("Reconcile: checking authorized holds against processor state...")

	bookings, err := s.store.Bookings.ListByPaymentStatus(db.PaymentStatusAuthorized)
	if err != nil {
		return fmt.Errorf("reconcile: failed to list authorized bookings: %w", err)
	}
	if len(bookings) == 0 {
		log.Println("Reconcile: no authorized holds to check.")
		return nil
	}

	var repaired int
	for _, booking := range bookings {
		if booking.StripePaymentIntentID == nil {
			continue
		}
		hold, err := s.gateway.GetHold(*booking.StripePaymentIntentID)
		if err != nil {
			log.Printf("Reconcile: could not retrieve hold for booking %s: %v", booking.ID, err)
			continue
		}
		switch hold.Status {
		case "canceled":
			// Hold released or auto-expired processor-side.
			if err := s.store.Bookings.SetPaymentStatus(booking.ID, db.PaymentStatusCancelled); err != nil {
				log.Printf("Reconcile: failed to mark booking %s cancelled: %v", booking.ID, err)
				continue
			}
			s.appendEvent(booking.ID, db.EventCancelled, nil, hold.ID)
			repaired++
		case "succeeded":
			// Captured at the processor but the local write was lost.
			amount := hold.AmountCents
			if err := s.store.Bookings.SetCaptured(booking.ID, amount); err != nil {
				log.Printf("Reconcile: failed to mark booking %s captured: %v", booking.ID, err)
				continue
			}
			s.appendEvent(booking.ID, db.EventCaptured, &amount, hold.ID)
			repaired++
		}
	}

	log.Printf("Reconcile: checked %d holds, repaired %d.", len(bookings), repaired)
	return nil
}

// ApplyExternalCancel records a hold cancelled on the processor side
// (dashboard action or auto-expiry). A booking already past authorized is
// left alone, which keeps replayed webhook deliveries harmless.
func (s *JobService) ApplyExternalCancel(paymentIntentID, stripeEventID string) error {
	booking, err := s.store.Bookings.GetByPaymentIntentID(paymentIntentID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			log.Printf("No booking for cancelled intent %s; likely an unmaterialized hold", paymentIntentID)
			return nil
		}
		return err
	}
	if booking.PaymentStatus != db.PaymentStatusAuthorized {
		return nil
	}
	if err := s.store.Bookings.SetPaymentStatus(booking.ID, db.PaymentStatusCancelled); err != nil {
		return err
	}
	s.appendEvent(booking.ID, db.EventCancelled, nil, stripeEventID)
	return nil
}

// ApplyExternalRefund reconciles the local record against the processor's
// cumulative refunded amount, e.g. after a refund issued from the Stripe
// dashboard. No-op when the totals already agree.
func (s *JobService) ApplyExternalRefund(paymentIntentID, stripeEventID string, refundedTotalCents int64) error {
	booking, err := s.store.Bookings.GetByPaymentIntentID(paymentIntentID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			log.Printf("No booking for refunded intent %s", paymentIntentID)
			return nil
		}
		return err
	}
	delta := refundedTotalCents - booking.RefundedAmountCents
	if delta <= 0 {
		return nil
	}

	captured := int64(0)
	if booking.CapturedAmountCents != nil {
		captured = *booking.CapturedAmountCents
	}
	status := db.PaymentStatusPartiallyRefunded
	eventType := db.EventPartialRefund
	if refundedTotalCents >= captured {
		status = db.PaymentStatusRefunded
		eventType = db.EventRefunded
	}
	if err := s.store.Bookings.SetRefunded(booking.ID, status, refundedTotalCents); err != nil {
		return err
	}
	s.appendEvent(booking.ID, eventType, &delta, stripeEventID)
	return nil
}

func (s *JobService) appendEvent(bookingID, eventType string, amountCents *int64, stripeEventID string) {
	if err := s.store.PaymentEvents.Append(&db.PaymentEvent{
		BookingID:     bookingID,
		EventType:     eventType,
		AmountCents:   amountCents,
		StripeEventID: stripeEventID,
		Metadata:      map[string]string{"source": "reconcile"},
	}); err != nil {
		log.Printf("Reconcile: error appending %s event for booking %s: %v", eventType, bookingID, err)
	}
}
