package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"spacecityrentals/internal/db"
)

type PaymentEventRepository struct {
	DB *sql.DB
}

func NewPaymentEventRepository(database *sql.DB) *PaymentEventRepository {
	return &PaymentEventRepository{DB: database}
}

func (r *PaymentEventRepository) Append(e *db.PaymentEvent) error {
	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("error encoding payment event metadata: %w", err)
	}

	query := `
		INSERT INTO payment_events
		(id, booking_id, event_type, amount_cents, stripe_event_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at`
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := r.DB.QueryRow(query,
		e.ID, e.BookingID, e.EventType, e.AmountCents, e.StripeEventID, raw,
	).Scan(&e.CreatedAt); err != nil {
		return fmt.Errorf("error inserting payment event for booking %s: %w", e.BookingID, err)
	}
	return nil
}

func (r *PaymentEventRepository) ListByBooking(bookingID string) ([]db.PaymentEvent, error) {
	query := `
		SELECT id, booking_id, event_type, amount_cents, stripe_event_id, metadata, created_at
		FROM payment_events
		WHERE booking_id = $1
		ORDER BY created_at`
	rows, err := r.DB.Query(query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error querying payment events for booking %s: %w", bookingID, err)
	}
	defer rows.Close()

	var events []db.PaymentEvent
	for rows.Next() {
		var e db.PaymentEvent
		var raw []byte
		if err := rows.Scan(&e.ID, &e.BookingID, &e.EventType, &e.AmountCents, &e.StripeEventID, &raw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment event row: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Metadata); err != nil {
				return nil, fmt.Errorf("error decoding payment event metadata: %w", err)
			}
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating payment event rows: %w", err)
	}
	return events, nil
}
