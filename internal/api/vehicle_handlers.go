package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"spacecityrentals/internal/service"
)

type VehicleHandler struct {
	Vehicles     *service.VehicleService
	Availability *service.AvailabilityService
}

func NewVehicleHandler(vehicles *service.VehicleService, availability *service.AvailabilityService) *VehicleHandler {
	return &VehicleHandler{Vehicles: vehicles, Availability: availability}
}

// ListVehicles returns the active fleet for the public catalog.
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Vehicles.ListActive()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, toVehicleResponse(&vehicles[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetVehicle returns one vehicle by slug for the detail page.
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	vehicle, err := h.Vehicles.GetBySlug(slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponse(vehicle))
}

// CheckAvailability returns the vehicle ids currently rented out. Advisory
// for catalog display; booking creation does not gate on it.
func (h *VehicleHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	unavailable, err := h.Availability.UnavailableVehicleIDs(time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	ids := make([]string, 0, len(unavailable))
	for id := range unavailable {
		ids = append(ids, id)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"unavailable_vehicle_ids": ids})
}
