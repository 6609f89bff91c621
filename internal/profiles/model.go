package profiles

import "time"

// DateLayout is the wire format of a date of birth.
const DateLayout = "2006-01-02"

// Profile is the one-to-one companion of an identity.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	DateOfBirth string    `json:"dateOfBirth"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Update holds the editable fields. Nil fields are left unchanged.
type Update struct {
	FullName    *string `json:"fullName"`
	DateOfBirth *string `json:"dateOfBirth"`
}
