// Package session provides server-side session storage.
// A session is created at login, looked up on every authenticated request
// and destroyed at logout. Two backends are available: an in-memory store
// for single-node deployments and a Redis store for deployments that need
// sessions to survive restarts.
package session

import (
	"context"
	"time"

	"github.com/prn-tf/wilayah/internal/domain"
)

// Store is the session storage abstraction used by the HTTP layer.
type Store interface {
	// Create persists a session under its token with the given TTL.
	Create(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Get retrieves a session by token. Returns domain.ErrSessionNotFound
	// if the token is unknown or the session has expired.
	Get(ctx context.Context, token string) (*domain.Session, error)

	// Destroy removes a session by token. Destroying an unknown token
	// is not an error.
	Destroy(ctx context.Context, token string) error

	// Close releases store resources.
	Close() error
}
