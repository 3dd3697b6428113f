package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
	"spacecityrentals/internal/repository"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `
	b.id, b.confirmation_code, b.vehicle_id, b.guest_name, b.guest_email, b.guest_phone,
	to_char(b.start_date, 'YYYY-MM-DD'), to_char(b.end_date, 'YYYY-MM-DD'),
	b.status, b.admin_notes, b.terms_accepted, b.created_at, b.updated_at,
	b.stripe_payment_intent_id, b.payment_status, b.total_amount_cents,
	b.security_deposit_cents, b.captured_amount_cents, b.refunded_amount_cents,
	v.name, v.slug`

func scanBooking(row interface{ Scan(...interface{}) error }) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.ConfirmationCode, &b.VehicleID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.StartDate, &b.EndDate,
		&b.Status, &b.AdminNotes, &b.TermsAccepted, &b.CreatedAt, &b.UpdatedAt,
		&b.StripePaymentIntentID, &b.PaymentStatus, &b.TotalAmountCents,
		&b.SecurityDepositCents, &b.CapturedAmountCents, &b.RefundedAmountCents,
		&b.VehicleName, &b.VehicleSlug,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(id, confirmation_code, vehicle_id, guest_name, guest_email, guest_phone,
		 start_date, end_date, status, admin_notes, terms_accepted,
		 stripe_payment_intent_id, payment_status, total_amount_cents,
		 security_deposit_cents, captured_amount_cents, refunded_amount_cents,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::date, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at`
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	return r.DB.QueryRow(query,
		b.ID,
		b.ConfirmationCode,
		b.VehicleID,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		b.StartDate,
		b.EndDate,
		b.Status,
		b.AdminNotes,
		b.TermsAccepted,
		b.StripePaymentIntentID,
		b.PaymentStatus,
		b.TotalAmountCents,
		b.SecurityDepositCents,
		b.CapturedAmountCents,
		b.RefundedAmountCents,
		now,
		now,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetByID(id string) (*db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.id = $1`
	b, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoRows
		}
		return nil, fmt.Errorf("error querying booking %s: %w", id, err)
	}
	return b, nil
}

func (r *BookingRepository) GetByCode(code string) (*db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id
		WHERE UPPER(b.confirmation_code) = UPPER($1)`
	b, err := scanBooking(r.DB.QueryRow(query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoRows
		}
		return nil, fmt.Errorf("error querying booking by code: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) ListByEmail(email string) ([]db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id
		WHERE LOWER(b.guest_email) = LOWER($1)
		ORDER BY b.created_at DESC`
	return r.queryBookings(query, email)
}

func (r *BookingRepository) List(statusFilter string) ([]db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id`
	args := []interface{}{}
	if statusFilter != "" {
		query += ` WHERE b.status = $1`
		args = append(args, statusFilter)
	}
	query += ` ORDER BY b.created_at DESC`
	return r.queryBookings(query, args...)
}

func (r *BookingRepository) queryBookings(query string, args ...interface{}) ([]db.Booking, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(id, status string, notes entities.OptionalString) (*db.Booking, error) {
	var err error
	if notes.Set {
		_, err = r.DB.Exec(
			`UPDATE bookings SET status = $2, admin_notes = $3, updated_at = NOW() WHERE id = $1`,
			id, status, notes.Value)
	} else {
		_, err = r.DB.Exec(
			`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
			id, status)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking %s status: %w", id, err)
	}
	return r.GetByID(id)
}

func (r *BookingRepository) SetCaptured(id string, amountCents int64) error {
	_, err := r.DB.Exec(
		`UPDATE bookings SET payment_status = $2, captured_amount_cents = $3, updated_at = NOW() WHERE id = $1`,
		id, db.PaymentStatusCaptured, amountCents)
	if err != nil {
		return fmt.Errorf("error marking booking %s captured: %w", id, err)
	}
	return nil
}

func (r *BookingRepository) SetRefunded(id, paymentStatus string, refundedTotalCents int64) error {
	_, err := r.DB.Exec(
		`UPDATE bookings SET payment_status = $2, refunded_amount_cents = $3, updated_at = NOW() WHERE id = $1`,
		id, paymentStatus, refundedTotalCents)
	if err != nil {
		return fmt.Errorf("error marking booking %s refunded: %w", id, err)
	}
	return nil
}

func (r *BookingRepository) SetPaymentStatus(id, paymentStatus string) error {
	_, err := r.DB.Exec(
		`UPDATE bookings SET payment_status = $2, updated_at = NOW() WHERE id = $1`,
		id, paymentStatus)
	if err != nil {
		return fmt.Errorf("error updating booking %s payment status: %w", id, err)
	}
	return nil
}

func (r *BookingRepository) ApprovedOverlapping(date string) ([]string, error) {
	query := `
		SELECT DISTINCT vehicle_id FROM bookings
		WHERE status = $1 AND start_date <= $2::date AND end_date >= $2::date`
	rows, err := r.DB.Query(query, db.BookingStatusApproved, date)
	if err != nil {
		return nil, fmt.Errorf("error querying approved bookings for %s: %w", date, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning vehicle id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *BookingRepository) ListByPaymentStatus(paymentStatus string) ([]db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.payment_status = $1
		ORDER BY b.created_at DESC`
	return r.queryBookings(query, paymentStatus)
}

func (r *BookingRepository) GetByPaymentIntentID(paymentIntentID string) (*db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.stripe_payment_intent_id = $1`
	b, err := scanBooking(r.DB.QueryRow(query, paymentIntentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoRows
		}
		return nil, fmt.Errorf("error querying booking by payment intent: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) CountAll() (int, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return n, nil
}

func (r *BookingRepository) CountByStatus(status string) (int, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting bookings by status: %w", err)
	}
	return n, nil
}
