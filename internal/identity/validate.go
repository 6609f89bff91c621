package identity

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"critique-backend/internal/profiles"
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest password bcrypt can hash.
	MaxPasswordBytes = 72
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return fmt.Errorf("%w: email address is invalid", ErrValidation)
	}
	return nil
}

// validateSignUp runs every registration check; nothing is written when it fails.
func validateSignUp(req SignUpRequest, now time.Time) error {
	if err := validateEmail(normalizeEmail(req.Email)); err != nil {
		return err
	}
	if len(req.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	if len(req.Password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordBytes)
	}
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	return profiles.ValidateDateOfBirth(req.DateOfBirth, now)
}
