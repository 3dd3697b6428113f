package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spacecityrentals/internal/config"
	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
	apperrors "spacecityrentals/internal/errors"
	"spacecityrentals/internal/repository/memory"
)

func newTestBookingService() (*BookingService, *memory.Store) {
	store := memory.NewSeededStore()
	notify := NewNotifyService(&config.Config{PublicBaseURL: "http://localhost:3000"})
	return NewBookingService(store.AsStore(), notify, time.UTC), store
}

func testDraft(slug string) entities.BookingDraft {
	return entities.BookingDraft{
		VehicleSlug:   slug,
		GuestName:     "Grace Hopper",
		GuestEmail:    "grace@example.com",
		GuestPhone:    "713-555-0100",
		StartDate:     "2100-04-10",
		EndDate:       "2100-04-12",
		TermsAccepted: true,
	}
}

func TestCreateBookingAndLookupByCode(t *testing.T) {
	svc, _ := newTestBookingService()

	errs, vehicle, err := svc.ValidateDraft(testDraft("rolls-royce-ghost"))
	assert.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "Rolls-Royce Ghost", vehicle.Name)

	booking, err := svc.CreateBooking(testDraft("rolls-royce-ghost"), vehicle)
	assert.NoError(t, err)
	assert.Len(t, booking.ConfirmationCode, 8)
	assert.Equal(t, db.BookingStatusPending, booking.Status)
	assert.Equal(t, db.PaymentStatusNone, booking.PaymentStatus)

	// Lookup is case-insensitive.
	found, err := svc.GetBookingByCode(strings.ToLower(booking.ConfirmationCode))
	assert.NoError(t, err)
	assert.Equal(t, booking.ID, found.ID)
	assert.Equal(t, "Rolls-Royce Ghost", found.VehicleName)
	assert.Equal(t, "rolls-royce-ghost", found.VehicleSlug)
}

func TestGetBookingByCodeNotFound(t *testing.T) {
	svc, _ := newTestBookingService()

	_, err := svc.GetBookingByCode("ZZZZZZZZ")
	httpErr, ok := err.(*apperrors.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, 404, httpErr.Code)
}

func TestValidateDraftUnknownAndInactiveVehicles(t *testing.T) {
	svc, store := newTestBookingService()

	errs, vehicle, err := svc.ValidateDraft(testDraft("delorean-dmc-12"))
	assert.NoError(t, err)
	assert.Nil(t, vehicle)
	assert.Equal(t, "vehicle not found", errs["vehicle_slug"])

	// Deactivated vehicles are not bookable either.
	v, err := store.Vehicles().GetBySlug("rolls-royce-ghost")
	assert.NoError(t, err)
	assert.NoError(t, store.Vehicles().Deactivate(v.ID))

	errs, vehicle, err = svc.ValidateDraft(testDraft("rolls-royce-ghost"))
	assert.NoError(t, err)
	assert.Nil(t, vehicle)
	assert.Equal(t, "vehicle not found", errs["vehicle_slug"])
}

func TestListBookingsByEmail(t *testing.T) {
	svc, _ := newTestBookingService()

	_, vehicle, err := svc.ValidateDraft(testDraft("rolls-royce-ghost"))
	assert.NoError(t, err)

	first, err := svc.CreateBooking(testDraft("rolls-royce-ghost"), vehicle)
	assert.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.CreateBooking(testDraft("rolls-royce-ghost"), vehicle)
	assert.NoError(t, err)

	other := testDraft("rolls-royce-ghost")
	other.GuestEmail = "someone.else@example.com"
	_, err = svc.CreateBooking(other, vehicle)
	assert.NoError(t, err)

	// Case-insensitive match, newest first.
	list, err := svc.ListBookingsByEmail("GRACE@Example.COM")
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestUpdateStatusApproveAndNotesTriState(t *testing.T) {
	svc, store := newTestBookingService()

	_, vehicle, err := svc.ValidateDraft(testDraft("lamborghini-huracan"))
	assert.NoError(t, err)
	booking, err := svc.CreateBooking(testDraft("lamborghini-huracan"), vehicle)
	assert.NoError(t, err)

	// Approve with a note.
	updated, actions, err := svc.UpdateStatus(booking.ID, db.BookingStatusApproved, entities.StringValue("called guest, confirmed pickup"))
	assert.NoError(t, err)
	assert.Equal(t, db.BookingStatusApproved, updated.Status)
	assert.Equal(t, "called guest, confirmed pickup", *updated.AdminNotes)
	assert.Equal(t, booking.GuestPhone, actions.GuestPhone)
	assert.Contains(t, actions.SMSBody, "approved")
	assert.Contains(t, actions.StatusURL, booking.ConfirmationCode)

	v, err := store.Vehicles().GetByID(vehicle.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, v.RentalCount)

	// Re-approving is allowed; notes omitted keeps the existing note and the
	// rental counter does not tick again.
	updated, _, err = svc.UpdateStatus(booking.ID, db.BookingStatusApproved, entities.OptionalString{})
	assert.NoError(t, err)
	assert.Equal(t, "called guest, confirmed pickup", *updated.AdminNotes)

	v, err = store.Vehicles().GetByID(vehicle.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, v.RentalCount)

	// Explicit null clears the note.
	updated, _, err = svc.UpdateStatus(booking.ID, db.BookingStatusDeclined, entities.NullString())
	assert.NoError(t, err)
	assert.Equal(t, db.BookingStatusDeclined, updated.Status)
	assert.Nil(t, updated.AdminNotes)
}

func TestUpdateStatusCorrectionsIncrementOncePerApproval(t *testing.T) {
	svc, store := newTestBookingService()

	_, vehicle, err := svc.ValidateDraft(testDraft("range-rover-sport"))
	assert.NoError(t, err)
	booking, err := svc.CreateBooking(testDraft("range-rover-sport"), vehicle)
	assert.NoError(t, err)

	_, _, err = svc.UpdateStatus(booking.ID, db.BookingStatusApproved, entities.OptionalString{})
	assert.NoError(t, err)
	_, _, err = svc.UpdateStatus(booking.ID, db.BookingStatusDeclined, entities.OptionalString{})
	assert.NoError(t, err)
	_, _, err = svc.UpdateStatus(booking.ID, db.BookingStatusApproved, entities.OptionalString{})
	assert.NoError(t, err)

	// Approve, decline, approve again: each transition into approved counts.
	v, err := store.Vehicles().GetByID(vehicle.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, v.RentalCount)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestBookingService()

	_, _, err := svc.UpdateStatus("some-id", "archived", entities.OptionalString{})
	httpErr, ok := err.(*apperrors.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, 400, httpErr.Code)
}

func TestUpdateStatusMissingBooking(t *testing.T) {
	svc, _ := newTestBookingService()

	_, _, err := svc.UpdateStatus("no-such-id", db.BookingStatusApproved, entities.OptionalString{})
	httpErr, ok := err.(*apperrors.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, 404, httpErr.Code)
}

func TestStats(t *testing.T) {
	svc, _ := newTestBookingService()

	_, vehicle, err := svc.ValidateDraft(testDraft("chevrolet-corvette-c8"))
	assert.NoError(t, err)
	b1, err := svc.CreateBooking(testDraft("chevrolet-corvette-c8"), vehicle)
	assert.NoError(t, err)
	_, err = svc.CreateBooking(testDraft("chevrolet-corvette-c8"), vehicle)
	assert.NoError(t, err)
	_, _, err = svc.UpdateStatus(b1.ID, db.BookingStatusApproved, entities.OptionalString{})
	assert.NoError(t, err)

	stats, err := svc.Stats()
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 1, stats.PendingBookings)
	assert.Equal(t, 6, stats.ActiveVehicles)
}
