package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/repository"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(database *sql.DB) *AdminRepository {
	return &AdminRepository{DB: database}
}

func (r *AdminRepository) GetByEmail(email string) (*db.Admin, error) {
	var a db.Admin
	err := r.DB.QueryRow(
		`SELECT id, email, password_hash FROM admins WHERE LOWER(email) = LOWER($1)`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoRows
		}
		return nil, fmt.Errorf("error querying admin by email: %w", err)
	}
	return &a, nil
}

func (r *AdminRepository) Create(email, passwordHash string) error {
	_, err := r.DB.Exec(
		`INSERT INTO admins (email, password_hash) VALUES ($1, $2)`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("error inserting admin: %w", err)
	}
	return nil
}
