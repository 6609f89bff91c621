package identity

import (
	"time"

	"critique-backend/internal/profiles"
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// Identity is an account that can sign in.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SignUpRequest is the registration form.
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FullName        string `json:"fullName"`
	DateOfBirth     string `json:"dateOfBirth"`
}

// SignInRequest is the login form.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is an issued session token.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CurrentUser is the signed-in identity plus its profile, when one exists.
type CurrentUser struct {
	UserID    string            `json:"userId"`
	Email     string            `json:"email"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Profile   *profiles.Profile `json:"profile,omitempty"`
}
