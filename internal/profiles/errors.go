package profiles

import "errors"

var (
	ErrNotFound   = errors.New("profile not found")
	ErrExists     = errors.New("profile already exists")
	ErrValidation = errors.New("validation error")
)
