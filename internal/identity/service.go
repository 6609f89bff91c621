package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"critique-backend/internal/profiles"
	"critique-backend/internal/shared/auth"
	"critique-backend/internal/shared/telemetry"
)

type Service struct {
	Repo        Repo
	Revocations Revocations
	Profiles    *profiles.Service
	Now         func() time.Time
	// BcryptCost overrides bcrypt.DefaultCost when non-zero.
	BcryptCost int
}

func NewService(repo Repo, revocations Revocations, profileSvc *profiles.Service) *Service {
	return &Service{Repo: repo, Revocations: revocations, Profiles: profileSvc, Now: time.Now}
}

// SignUp validates the form, creates the identity and its profile, and signs the user in.
// A profile failure after the identity write is reported but not rolled back.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (Session, error) {
	if err := validateSignUp(req, s.now()); err != nil {
		return Session{}, err
	}
	email := normalizeEmail(req.Email)

	hash, err := HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	identity := Identity{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Provider:     ProviderPassword,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, identity); err != nil {
		return Session{}, fmt.Errorf("create identity: %w", err)
	}

	if s.Profiles != nil {
		_, err := s.Profiles.Create(ctx, profiles.Profile{
			ID:          identity.ID,
			Email:       email,
			FullName:    strings.TrimSpace(req.FullName),
			DateOfBirth: strings.TrimSpace(req.DateOfBirth),
		})
		if err != nil {
			telemetry.Error("identity.signup.profile_failed", map[string]any{
				"user_id": identity.ID,
				"err":     err,
			})
			return Session{}, fmt.Errorf("create profile: %w", err)
		}
	}

	telemetry.Info("identity.signup", map[string]any{"user_id": identity.ID})
	return s.issue(identity, strings.TrimSpace(req.FullName))
}

// SignIn checks the credentials and issues a new session.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (Session, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	identity, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("load identity: %w", err)
	}
	if !CheckPasswordHash(req.Password, identity.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(identity, "")
}

// SignInExternal finds or creates an identity for a verified external email.
func (s *Service) SignInExternal(ctx context.Context, provider, email, name string) (Session, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return Session{}, err
	}
	identity, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		identity = Identity{
			ID:        uuid.NewString(),
			Email:     email,
			Provider:  provider,
			CreatedAt: s.now().UTC(),
		}
		if err := s.Repo.Create(ctx, identity); err != nil {
			return Session{}, fmt.Errorf("create identity: %w", err)
		}
		if s.Profiles != nil {
			if _, err := s.Profiles.Create(ctx, profiles.Profile{ID: identity.ID, Email: email, FullName: name}); err != nil {
				return Session{}, fmt.Errorf("create profile: %w", err)
			}
		}
	default:
		return Session{}, fmt.Errorf("load identity: %w", err)
	}
	return s.issue(identity, name)
}

// SignOut revokes the session so its token is no longer accepted.
func (s *Service) SignOut(ctx context.Context, claims auth.Claims) error {
	if claims.ID == "" {
		return fmt.Errorf("%w: session has no id", ErrValidation)
	}
	if s.Revocations == nil {
		return errors.New("revocations not configured")
	}
	if err := s.Revocations.Revoke(ctx, claims.ID, claims.ExpiresAt()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	telemetry.Info("identity.signout", map[string]any{"user_id": claims.Sub})
	return nil
}

// Current resolves the signed-in user for verified claims.
func (s *Service) Current(ctx context.Context, claims auth.Claims) (CurrentUser, error) {
	identity, err := s.Repo.GetByID(ctx, claims.Sub)
	if err != nil {
		return CurrentUser{}, err
	}
	user := CurrentUser{
		UserID:    identity.ID,
		Email:     identity.Email,
		ExpiresAt: claims.ExpiresAt(),
	}
	if s.Profiles != nil {
		profile, err := s.Profiles.Get(ctx, identity.ID)
		switch {
		case err == nil:
			user.Profile = &profile
		case errors.Is(err, profiles.ErrNotFound):
		default:
			return CurrentUser{}, err
		}
	}
	return user, nil
}

func (s *Service) issue(identity Identity, name string) (Session, error) {
	now := time.Now().UTC()
	claims := auth.Claims{
		Sub:   identity.ID,
		ID:    uuid.NewString(),
		Email: identity.Email,
		Name:  name,
		Iat:   now.Unix(),
		Exp:   now.Add(auth.SessionTTL).Unix(),
	}
	token, err := auth.SignJWT(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{
		Token:     token,
		UserID:    identity.ID,
		Email:     identity.Email,
		ExpiresAt: claims.ExpiresAt(),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
