package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"spacecityrentals/internal/config"
	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
	"spacecityrentals/internal/repository/memory"
	"spacecityrentals/internal/service"
)

type stubGateway struct {
	holds map[string]*service.Hold
	next  int
}

func newStubGateway() *stubGateway {
	return &stubGateway{holds: map[string]*service.Hold{}}
}

func (g *stubGateway) CreateHold(params service.HoldParams) (*service.Hold, error) {
	g.next++
	h := &service.Hold{
		ID:           fmt.Sprintf("pi_stub_%03d", g.next),
		ClientSecret: fmt.Sprintf("pi_stub_%03d_secret", g.next),
		AmountCents:  params.AmountCents,
		Status:       service.HoldReady,
	}
	g.holds[h.ID] = h
	return h, nil
}

func (g *stubGateway) GetHold(id string) (*service.Hold, error) {
	h, ok := g.holds[id]
	if !ok {
		return nil, errors.New("no such payment_intent: " + id)
	}
	copied := *h
	return &copied, nil
}

func (g *stubGateway) Capture(id string, amountCents int64, idempotencyKey string) (string, error) {
	if h, ok := g.holds[id]; ok {
		h.Status = "succeeded"
	}
	return id, nil
}

func (g *stubGateway) Refund(id string, amountCents int64, idempotencyKey string) (string, error) {
	return "re_stub_" + id, nil
}

func (g *stubGateway) Cancel(id string) (string, error) {
	if h, ok := g.holds[id]; ok {
		h.Status = "canceled"
	}
	return id, nil
}

type adminFixture struct {
	router  *mux.Router
	store   *memory.Store
	booking *db.Booking
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	store := memory.NewSeededStore()
	gateway := newStubGateway()
	notify := service.NewNotifyService(&config.Config{PublicBaseURL: "http://localhost:3000"})
	bookings := service.NewBookingService(store.AsStore(), notify, time.UTC)
	settlement := service.NewSettlementService(store.AsStore(), gateway)
	vehicles := service.NewVehicleService(store.Vehicles())
	payments := service.NewPaymentService(store.AsStore(), gateway, config.DefaultSecurityDepositCents)
	handler := NewAdminHandler(bookings, settlement, vehicles)

	draft := entities.BookingDraft{
		VehicleSlug:   "rolls-royce-ghost",
		GuestName:     "Grace Hopper",
		GuestEmail:    "grace@example.com",
		GuestPhone:    "713-555-0100",
		StartDate:     "2100-04-10",
		EndDate:       "2100-04-12",
		TermsAccepted: true,
	}
	result, err := payments.CreateHold(draft)
	assert.NoError(t, err)
	booking, err := payments.MaterializeBooking(result.HoldReference, draft)
	assert.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings", handler.ListBookings).Methods("GET")
	r.HandleFunc("/admin/stats", handler.Stats).Methods("GET")
	r.HandleFunc("/admin/bookings/{id}/status", handler.UpdateBookingStatus).Methods("PUT")
	r.HandleFunc("/admin/bookings/{id}/events", handler.ListPaymentEvents).Methods("GET")
	r.HandleFunc("/admin/bookings/{id}/capture", handler.CapturePayment).Methods("POST")
	r.HandleFunc("/admin/bookings/{id}/refund", handler.RefundPayment).Methods("POST")
	r.HandleFunc("/admin/bookings/{id}/cancel-hold", handler.CancelHold).Methods("POST")
	r.HandleFunc("/admin/vehicles", handler.CreateVehicle).Methods("POST")
	r.HandleFunc("/admin/vehicles/{id}", handler.UpdateVehicle).Methods("PUT")
	r.HandleFunc("/admin/vehicles/{id}", handler.DeactivateVehicle).Methods("DELETE")

	return &adminFixture{router: r, store: store, booking: booking}
}

func (f *adminFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestAdminUpdateBookingStatusEndpoint(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do("PUT", "/admin/bookings/"+f.booking.ID+"/status", `{"status": "approved", "admin_notes": "vip guest"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Booking BookingResponse                `json:"booking"`
		Contact *entities.GuestContactActions `json:"contact"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp.Booking.Status)
	assert.Equal(t, "vip guest", *resp.Booking.AdminNotes)
	assert.Contains(t, resp.Contact.SMSBody, "approved")

	// Explicit null clears the note; a later request omitting the field
	// leaves it cleared.
	rec = f.do("PUT", "/admin/bookings/"+f.booking.ID+"/status", `{"status": "approved", "admin_notes": null}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Booking.AdminNotes)

	rec = f.do("PUT", "/admin/bookings/"+f.booking.ID+"/status", `{"status": "declined"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "declined", resp.Booking.Status)
	assert.Nil(t, resp.Booking.AdminNotes)
}

func TestAdminUpdateBookingStatusRejectsUnknown(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do("PUT", "/admin/bookings/"+f.booking.ID+"/status", `{"status": "archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCaptureAndRefundEndpoints(t *testing.T) {
	f := newAdminFixture(t)

	// Empty body captures the full authorized amount.
	rec := f.do("POST", "/admin/bookings/"+f.booking.ID+"/capture", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "captured", resp.PaymentStatus)
	assert.Equal(t, int64(290000), *resp.CapturedAmountCents)

	rec = f.do("POST", "/admin/bookings/"+f.booking.ID+"/refund", `{"amount_cents": 50000}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "partially_refunded", resp.PaymentStatus)
	assert.Equal(t, int64(50000), resp.RefundedAmountCents)

	// Over-refunding the remainder is a conflict.
	rec = f.do("POST", "/admin/bookings/"+f.booking.ID+"/refund", `{"amount_cents": 999999}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do("GET", "/admin/bookings/"+f.booking.ID+"/events", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var events []PaymentEventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Len(t, events, 3) // authorized, captured, partial_refund
}

func TestAdminCancelHoldEndpoint(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do("POST", "/admin/bookings/"+f.booking.ID+"/cancel-hold", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.PaymentStatus)

	// A released hold can no longer be captured.
	rec = f.do("POST", "/admin/bookings/"+f.booking.ID+"/capture", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminVehicleEndpoints(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do("POST", "/admin/vehicles", `{"name": "Porsche 911 Turbo S", "daily_price_cents": 65000}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var v VehicleResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "porsche-911-turbo-s", v.Slug)
	assert.True(t, v.IsActive)

	rec = f.do("DELETE", "/admin/vehicles/"+v.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do("POST", "/admin/vehicles", `{"name": "Free Car", "daily_price_cents": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminStatsEndpoint(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do("GET", "/admin/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var stats service.AdminStats
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalBookings)
	assert.Equal(t, 1, stats.PendingBookings)
	assert.Equal(t, 6, stats.ActiveVehicles)
}
