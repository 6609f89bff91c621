package profiles

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (id, email, full_name, date_of_birth, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.FullName,
		profile.DateOfBirth,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrExists
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT id, email, full_name, date_of_birth, created_at, updated_at
FROM profiles
WHERE id = $1
LIMIT 1`
	var profile Profile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.DateOfBirth,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return profile, nil
}

func (r *PGRepo) Update(ctx context.Context, profile Profile) (Profile, error) {
	const query = `
UPDATE profiles
SET full_name = $2, date_of_birth = $3, updated_at = now()
WHERE id = $1
RETURNING id, email, full_name, date_of_birth, created_at, updated_at`
	var out Profile
	err := r.DB.QueryRowContext(ctx, query, profile.ID, profile.FullName, profile.DateOfBirth).Scan(
		&out.ID,
		&out.Email,
		&out.FullName,
		&out.DateOfBirth,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return out, nil
}

// isUniqueViolation matches SQLSTATE 23505 without binding to a driver error type.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
