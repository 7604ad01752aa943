// Package domain contains the core business entities for Wilayah.
// These are pure Go structs with no external dependencies, representing
// the administrative hierarchy and the accounts that manage it.
package domain

import (
	"time"
)

// User represents a registered user in the system.
// Users own provinces; districts belong to provinces and are shared
// across all authenticated users.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Username is the display name chosen at registration.
	// Constraints: 3-255 characters.
	Username string `json:"username"`

	// Email is the unique email address used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never be exposed in rendered views or logs.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with default values.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
