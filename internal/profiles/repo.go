package profiles

import "context"

// Repo defines persistence operations for profiles.
type Repo interface {
	Create(ctx context.Context, profile Profile) error
	GetByID(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, profile Profile) (Profile, error)
}
