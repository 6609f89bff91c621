package identity

import (
	"context"
	"time"
)

// Repo defines persistence operations for identities.
type Repo interface {
	Create(ctx context.Context, identity Identity) error
	GetByEmail(ctx context.Context, email string) (Identity, error)
	GetByID(ctx context.Context, id string) (Identity, error)
}

// Revocations records signed-out session ids until their tokens expire.
type Revocations interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
