package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
	"spacecityrentals/internal/service"
)

type AdminHandler struct {
	Bookings   *service.BookingService
	Settlement *service.SettlementService
	Vehicles   *service.VehicleService
}

func NewAdminHandler(bookings *service.BookingService, settlement *service.SettlementService, vehicles *service.VehicleService) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Settlement: settlement, Vehicles: vehicles}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	bookings, err := h.Bookings.ListBookings(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Bookings.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type updateStatusRequest struct {
	Status     string                  `json:"status"`
	AdminNotes entities.OptionalString `json:"admin_notes"`
}

// UpdateBookingStatus applies approve/decline (or a correction). The
// admin_notes field is tri-state: omitted keeps the stored notes, null
// clears them, a string overwrites them.
func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	booking, contact, err := h.Bookings.UpdateStatus(id, req.Status, req.AdminNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"booking": toBookingResponse(booking),
		"contact": contact,
	})
}

func (h *AdminHandler) ListPaymentEvents(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	events, err := h.Bookings.PaymentEvents(id)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]PaymentEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, PaymentEventResponse{
			ID:            e.ID,
			BookingID:     e.BookingID,
			EventType:     e.EventType,
			AmountCents:   e.AmountCents,
			StripeEventID: e.StripeEventID,
			Metadata:      e.Metadata,
			CreatedAt:     e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type amountRequest struct {
	AmountCents *int64 `json:"amount_cents"`
}

// CapturePayment captures an authorized hold, fully by default or
// partially when amount_cents is supplied.
func (h *AdminHandler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req amountRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
			return
		}
	}
	booking, err := h.Settlement.Capture(id, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// RefundPayment refunds a captured payment, the remaining balance by
// default or a partial amount when amount_cents is supplied.
func (h *AdminHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req amountRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
			return
		}
	}
	booking, err := h.Settlement.Refund(id, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// CancelHold releases an authorized hold without capturing funds.
func (h *AdminHandler) CancelHold(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	booking, err := h.Settlement.CancelHold(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

type vehicleRequest struct {
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Headline        string   `json:"headline"`
	Description     string   `json:"description"`
	DailyPriceCents int64    `json:"daily_price_cents"`
	Images          []string `json:"images"`
	ExperienceTags  []string `json:"experience_tags"`
	IsActive        *bool    `json:"is_active"`
}

func (h *AdminHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	vehicle := &db.Vehicle{
		Slug:            req.Slug,
		Name:            req.Name,
		Headline:        req.Headline,
		Description:     req.Description,
		DailyPriceCents: req.DailyPriceCents,
		Images:          req.Images,
		ExperienceTags:  req.ExperienceTags,
	}
	if err := h.Vehicles.Create(vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVehicleResponse(vehicle))
}

func (h *AdminHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	vehicle := &db.Vehicle{
		ID:              id,
		Slug:            req.Slug,
		Name:            req.Name,
		Headline:        req.Headline,
		Description:     req.Description,
		DailyPriceCents: req.DailyPriceCents,
		Images:          req.Images,
		ExperienceTags:  req.ExperienceTags,
		IsActive:        req.IsActive == nil || *req.IsActive,
	}
	if err := h.Vehicles.Update(vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponse(vehicle))
}

func (h *AdminHandler) DeactivateVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Vehicles.Deactivate(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deactivated"})
}
