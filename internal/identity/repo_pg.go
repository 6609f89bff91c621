package identity

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, identity Identity) error {
	const query = `
INSERT INTO identities (id, email, password_hash, provider, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.DB.ExecContext(ctx, query,
		identity.ID,
		identity.Email,
		identity.PasswordHash,
		identity.Provider,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Identity, error) {
	const query = `
SELECT id, email, password_hash, provider, created_at
FROM identities
WHERE email = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Identity, error) {
	const query = `
SELECT id, email, password_hash, provider, created_at
FROM identities
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) scanOne(row *sql.Row) (Identity, error) {
	var identity Identity
	err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.Provider,
		&identity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, err
	}
	return identity, nil
}

// PGRevocations stores signed-out session ids in revoked_sessions.
type PGRevocations struct {
	DB *sql.DB
}

func (r *PGRevocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	const query = `
INSERT INTO revoked_sessions (jti, expires_at, revoked_at)
VALUES ($1, $2, now())
ON CONFLICT (jti) DO NOTHING`
	if _, err := r.DB.ExecContext(ctx, query, jti, expiresAt); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, `DELETE FROM revoked_sessions WHERE expires_at < now()`)
	return err
}

func (r *PGRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE jti = $1)`
	var revoked bool
	if err := r.DB.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
