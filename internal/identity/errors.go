package identity

import (
	"errors"

	"critique-backend/internal/profiles"
)

var (
	// ErrValidation is shared with profiles so one check covers both forms.
	ErrValidation         = profiles.ErrValidation
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("identity not found")
)
