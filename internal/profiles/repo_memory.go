package profiles

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

func (r *MemoryRepo) Create(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; ok {
		return ErrExists
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = profile.CreatedAt
	r.profiles[profile.ID] = profile
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

func (r *MemoryRepo) Update(ctx context.Context, profile Profile) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.profiles[profile.ID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	existing.FullName = profile.FullName
	existing.DateOfBirth = profile.DateOfBirth
	existing.UpdatedAt = time.Now().UTC()
	r.profiles[profile.ID] = existing
	return existing, nil
}
