package profiles

import (
	"fmt"
	"strings"
	"time"
)

// MinimumAge is the youngest age allowed to hold an account.
const MinimumAge = 13

// ValidateDateOfBirth checks the format and the minimum age as of now.
func ValidateDateOfBirth(dob string, now time.Time) error {
	dob = strings.TrimSpace(dob)
	if dob == "" {
		return fmt.Errorf("%w: date of birth is required", ErrValidation)
	}
	born, err := time.Parse(DateLayout, dob)
	if err != nil {
		return fmt.Errorf("%w: date of birth must be YYYY-MM-DD", ErrValidation)
	}
	if born.After(now) {
		return fmt.Errorf("%w: date of birth is in the future", ErrValidation)
	}
	if Age(born, now) < MinimumAge {
		return fmt.Errorf("%w: you must be at least %d years old", ErrValidation, MinimumAge)
	}
	return nil
}

// Age returns completed years between born and now.
func Age(born, now time.Time) int {
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years
}

func validateFullName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if len(name) > 200 {
		return fmt.Errorf("%w: full name is too long", ErrValidation)
	}
	return nil
}
