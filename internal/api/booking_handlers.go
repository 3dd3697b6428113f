package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"spacecityrentals/internal/entities"
	"spacecityrentals/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
	// PaymentsEnabled switches the create endpoint's behavior: when true,
	// bookings materialize through the hold flow and direct creation is
	// rejected; when false, direct creation is the one and only path.
	PaymentsEnabled bool
}

func NewBookingHandler(svc *service.BookingService, paymentsEnabled bool) *BookingHandler {
	return &BookingHandler{Service: svc, PaymentsEnabled: paymentsEnabled}
}

// CreateBooking validates a guest draft and, with payments disabled,
// persists it directly with no payment fields populated.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var draft entities.BookingDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	errs, vehicle, err := h.Service.ValidateDraft(draft)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	if h.PaymentsEnabled {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "payments are enabled; create a hold and confirm it instead",
		})
		return
	}

	booking, err := h.Service.CreateBooking(draft, vehicle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

// GetBookingByCode is the guest status-lookup endpoint. Codes compare
// case-insensitively.
func (h *BookingHandler) GetBookingByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	booking, err := h.Service.GetBookingByCode(code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// ListBookingsByEmail returns a guest's bookings, newest first.
func (h *BookingHandler) ListBookingsByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email query parameter required"})
		return
	}
	bookings, err := h.Service.ListBookingsByEmail(email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}
