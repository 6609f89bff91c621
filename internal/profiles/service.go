package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Create stores the profile written at sign-up.
func (s *Service) Create(ctx context.Context, profile Profile) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("profiles service not configured")
	}
	profile.Email = strings.TrimSpace(profile.Email)
	profile.FullName = strings.TrimSpace(profile.FullName)
	if strings.TrimSpace(profile.ID) == "" || profile.Email == "" {
		return Profile{}, fmt.Errorf("%w: profile id and email are required", ErrValidation)
	}
	if profile.DateOfBirth != "" {
		if err := ValidateDateOfBirth(profile.DateOfBirth, s.now()); err != nil {
			return Profile{}, err
		}
	}
	if err := s.Repo.Create(ctx, profile); err != nil {
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return s.Repo.GetByID(ctx, profile.ID)
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("profiles service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Profile{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return s.Repo.GetByID(ctx, userID)
}

// Update applies the non-nil fields of upd. Validation happens before any write.
func (s *Service) Update(ctx context.Context, userID string, upd Update) (Profile, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if upd.FullName != nil {
		name := strings.TrimSpace(*upd.FullName)
		if err := validateFullName(name); err != nil {
			return Profile{}, err
		}
		current.FullName = name
	}
	if upd.DateOfBirth != nil {
		dob := strings.TrimSpace(*upd.DateOfBirth)
		if err := ValidateDateOfBirth(dob, s.now()); err != nil {
			return Profile{}, err
		}
		current.DateOfBirth = dob
	}
	updated, err := s.Repo.Update(ctx, current)
	if err != nil {
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
