package postgres

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"spacecityrentals/internal/db"
)

func TestPaymentEventRepositoryAppend(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()
	repo := NewPaymentEventRepository(mockDB)

	amount := int64(290000)
	mock.ExpectQuery("INSERT INTO payment_events").
		WithArgs(sqlmock.AnyArg(), "booking-1", db.EventAuthorized, amount, "pi_123", []byte(`{"source":"checkout"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	e := &db.PaymentEvent{
		BookingID:     "booking-1",
		EventType:     db.EventAuthorized,
		AmountCents:   &amount,
		StripeEventID: "pi_123",
		Metadata:      map[string]string{"source": "checkout"},
	}
	assert.NoError(t, repo.Append(e))
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentEventRepositoryAppendNilMetadata(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()
	repo := NewPaymentEventRepository(mockDB)

	mock.ExpectQuery("INSERT INTO payment_events").
		WithArgs(sqlmock.AnyArg(), "booking-1", db.EventCancelled, nil, "evt_001", []byte(`{}`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	assert.NoError(t, repo.Append(&db.PaymentEvent{
		BookingID:     "booking-1",
		EventType:     db.EventCancelled,
		StripeEventID: "evt_001",
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentEventRepositoryListByBooking(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()
	repo := NewPaymentEventRepository(mockDB)

	now := time.Now()
	mock.ExpectQuery("FROM payment_events").
		WithArgs("booking-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "event_type", "amount_cents", "stripe_event_id", "metadata", "created_at"}).
			AddRow("event-1", "booking-1", db.EventAuthorized, int64(290000), "pi_123", []byte(`{"vehicle_id":"vehicle-1"}`), now).
			AddRow("event-2", "booking-1", db.EventCaptured, int64(290000), "pi_123", []byte(`{}`), now.Add(time.Minute)))

	events, err := repo.ListByBooking("booking-1")
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, db.EventAuthorized, events[0].EventType)
	assert.Equal(t, "vehicle-1", events[0].Metadata["vehicle_id"])
	assert.Equal(t, int64(290000), *events[1].AmountCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}
