package service

import (
	"time"

	"spacecityrentals/internal/repository"
)

// AvailabilityService computes which vehicles are presently rented out.
// The result is advisory, consumed by the catalog UI; booking creation
// deliberately does not gate on it (conflicts are resolved by the admin
// declining).
type AvailabilityService struct {
	bookings repository.BookingStore
	location *time.Location
}

func NewAvailabilityService(bookings repository.BookingStore, location *time.Location) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, location: location}
}

// UnavailableVehicleIDs returns the ids of vehicles with at least one
// approved booking whose [start_date, end_date] contains today, inclusive
// on both ends. Today is the operator's local calendar day.
func (s *AvailabilityService) UnavailableVehicleIDs(now time.Time) (map[string]struct{}, error) {
	today := now.In(s.location).Format("2006-01-02")
	ids, err := s.bookings.ApprovedOverlapping(today)
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}
