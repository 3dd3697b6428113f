package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"spacecityrentals/internal/db"
	apperrors "spacecityrentals/internal/errors"
	"spacecityrentals/internal/repository"
)

// VehicleService is the thin catalog layer: public read paths plus the
// admin inventory operations. Vehicles are never destructively deleted;
// deactivation hides them from the public fleet.
type VehicleService struct {
	vehicles repository.VehicleStore
}

func NewVehicleService(vehicles repository.VehicleStore) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

func (s *VehicleService) ListActive() ([]db.Vehicle, error) {
	return s.vehicles.ListActive()
}

func (s *VehicleService) GetBySlug(slug string) (*db.Vehicle, error) {
	v, err := s.vehicles.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.ErrVehicleNotFound()
		}
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) Create(v *db.Vehicle) error {
	if v.Name == "" {
		return apperrors.NewHTTPError(400, "vehicle name is required")
	}
	if v.DailyPriceCents <= 0 {
		return apperrors.NewHTTPError(400, "daily price must be a positive number of cents")
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Slug == "" {
		v.Slug = Slugify(v.Name)
	}
	v.IsActive = true
	return s.vehicles.Create(v)
}

func (s *VehicleService) Update(v *db.Vehicle) error {
	if v.DailyPriceCents <= 0 {
		return apperrors.NewHTTPError(400, "daily price must be a positive number of cents")
	}
	if err := s.vehicles.Update(v); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.ErrVehicleNotFound()
		}
		return err
	}
	return nil
}

func (s *VehicleService) Deactivate(id string) error {
	if err := s.vehicles.Deactivate(id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.ErrVehicleNotFound()
		}
		return err
	}
	return nil
}

// Slugify derives a URL-safe slug from a vehicle name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
