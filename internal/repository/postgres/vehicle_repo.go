package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/repository"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

const vehicleColumns = `
	id, slug, name, headline, description, daily_price_cents,
	images, experience_tags, rental_count, is_active, created_at, updated_at`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*db.Vehicle, error) {
	var v db.Vehicle
	err := row.Scan(
		&v.ID, &v.Slug, &v.Name, &v.Headline, &v.Description, &v.DailyPriceCents,
		pq.Array(&v.Images), pq.Array(&v.ExperienceTags), &v.RentalCount,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) ListActive() ([]db.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles WHERE is_active = TRUE ORDER BY created_at`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle row: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) GetBySlug(slug string) (*db.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles WHERE slug = $1`
	v, err := scanVehicle(r.DB.QueryRow(query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoRows
		}
		return nil, fmt.Errorf("error querying vehicle by slug %q: %w", slug, err)
	}
	return v, nil
}

func (r *VehicleRepository) GetByID(id string) (*db.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoRows
		}
		return nil, fmt.Errorf("error querying vehicle %s: %w", id, err)
	}
	return v, nil
}

func (r *VehicleRepository) Create(v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles
		(id, slug, name, headline, description, daily_price_cents, images,
		 experience_tags, rental_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`
	return r.DB.QueryRow(query,
		v.ID, v.Slug, v.Name, v.Headline, v.Description, v.DailyPriceCents,
		pq.Array(v.Images), pq.Array(v.ExperienceTags), v.RentalCount, v.IsActive,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *VehicleRepository) Update(v *db.Vehicle) error {
	query := `
		UPDATE vehicles
		SET slug = $2, name = $3, headline = $4, description = $5,
			daily_price_cents = $6, images = $7, experience_tags = $8,
			is_active = $9, updated_at = NOW()
		WHERE id = $1`
	res, err := r.DB.Exec(query,
		v.ID, v.Slug, v.Name, v.Headline, v.Description,
		v.DailyPriceCents, pq.Array(v.Images), pq.Array(v.ExperienceTags), v.IsActive)
	if err != nil {
		return fmt.Errorf("error updating vehicle %s: %w", v.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *VehicleRepository) Deactivate(id string) error {
	res, err := r.DB.Exec(`UPDATE vehicles SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating vehicle %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *VehicleRepository) IncrementRentalCount(id string) error {
	_, err := r.DB.Exec(`UPDATE vehicles SET rental_count = rental_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing rental count for vehicle %s: %w", id, err)
	}
	return nil
}

func (r *VehicleRepository) CountActive() (int, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM vehicles WHERE is_active = TRUE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting active vehicles: %w", err)
	}
	return n, nil
}
