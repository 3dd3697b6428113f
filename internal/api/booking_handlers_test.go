package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"spacecityrentals/internal/config"
	"spacecityrentals/internal/repository/memory"
	"spacecityrentals/internal/service"
)

func newBookingTestRouter(paymentsEnabled bool) (*mux.Router, *memory.Store) {
	store := memory.NewSeededStore()
	notify := service.NewNotifyService(&config.Config{PublicBaseURL: "http://localhost:3000"})
	bookings := service.NewBookingService(store.AsStore(), notify, time.UTC)
	handler := NewBookingHandler(bookings, paymentsEnabled)

	r := mux.NewRouter()
	r.HandleFunc("/api/bookings", handler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", handler.ListBookingsByEmail).Methods("GET")
	r.HandleFunc("/api/bookings/code/{code}", handler.GetBookingByCode).Methods("GET")
	return r, store
}

const draftJSON = `{
	"vehicle_slug": "rolls-royce-ghost",
	"guest_name": "Grace Hopper",
	"guest_email": "grace@example.com",
	"guest_phone": "713-555-0100",
	"start_date": "2100-04-10",
	"end_date": "2100-04-12",
	"terms_accepted": true
}`

func TestCreateBookingEndpoint(t *testing.T) {
	router, _ := newBookingTestRouter(false)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(draftJSON))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.ConfirmationCode, 8)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "none", resp.PaymentStatus)
}

func TestCreateBookingEndpointValidation(t *testing.T) {
	router, _ := newBookingTestRouter(false)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(`{"vehicle_slug": "nope"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "vehicle not found", resp.Errors["vehicle_slug"])
	assert.Contains(t, resp.Errors, "guest_name")
	assert.Contains(t, resp.Errors, "terms_accepted")
}

func TestCreateBookingEndpointRejectedWhenPaymentsEnabled(t *testing.T) {
	router, _ := newBookingTestRouter(true)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(draftJSON))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetBookingByCodeEndpoint(t *testing.T) {
	router, _ := newBookingTestRouter(false)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(draftJSON))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req = httptest.NewRequest("GET", "/api/bookings/code/"+strings.ToLower(created.ConfirmationCode), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var found BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Rolls-Royce Ghost", found.VehicleName)
}

func TestGetBookingByCodeEndpointNotFound(t *testing.T) {
	router, _ := newBookingTestRouter(false)

	req := httptest.NewRequest("GET", "/api/bookings/code/ZZZZZZZZ", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBookingsByEmailEndpointRequiresEmail(t *testing.T) {
	router, _ := newBookingTestRouter(false)

	req := httptest.NewRequest("GET", "/api/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
