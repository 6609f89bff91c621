package analyses

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("analysis not found")
	ErrValidation = errors.New("validation error")
	// ErrConflict means the analysis id is already stored for another user.
	ErrConflict = errors.New("analysis id belongs to another user")
)

// InferenceError is a non-2xx answer from the inference endpoint.
type InferenceError struct {
	Status  int
	Message string
}

func (e *InferenceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inference endpoint returned %d", e.Status)
	}
	return fmt.Sprintf("inference endpoint returned %d: %s", e.Status, e.Message)
}
