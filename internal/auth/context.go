// Package auth gates HTTP requests behind a valid session cookie.
package auth

import (
	"context"

	"github.com/prn-tf/wilayah/internal/domain"
)

// contextKey is a private type for context keys defined in this package.
type contextKey struct{}

// sessionKey is the context key for the authenticated session.
var sessionKey = contextKey{}

// WithSession returns a context carrying the authenticated session.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext extracts the authenticated session from the context.
// The boolean is false for requests that did not pass the middleware.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*domain.Session)
	return session, ok
}

// UserIDFromContext extracts the authenticated user ID from the context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return 0, false
	}
	return session.UserID, true
}
