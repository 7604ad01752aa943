// Package domain contains the core business entities for Wilayah.
package domain

import (
	"time"
)

// Session is the server-held proof of authentication. The client holds
// only the opaque token (via cookie); everything else stays server-side.
type Session struct {
	// Token is the opaque session identifier delivered in the cookie.
	Token string `json:"token"`

	// UserID is the authenticated user's identifier.
	UserID int64 `json:"user_id"`

	// Username is kept alongside the ID so views can greet the user
	// without an extra lookup.
	Username string `json:"username"`

	// CreatedAt is when the session was established.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the session stops being valid.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
