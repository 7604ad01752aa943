package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
)

// SessionValidator resolves a session token to a live session.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*domain.Session, error)
}

// Middleware guards routes behind a valid session cookie.
type Middleware struct {
	sessions   SessionValidator
	cookieName string
	logger     zerolog.Logger
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(sessions SessionValidator, cookieName string, logger zerolog.Logger) *Middleware {
	return &Middleware{
		sessions:   sessions,
		cookieName: cookieName,
		logger:     logger.With().Str("component", "auth").Logger(),
	}
}

// RequireSession redirects to the login page unless the request carries a
// valid session cookie. On success the session is placed in the request
// context for handlers to read.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		session, err := m.sessions.Validate(r.Context(), cookie.Value)
		if err != nil {
			// Unknown and expired tokens look the same to the client.
			m.logger.Debug().Str("path", r.URL.Path).Msg("rejected request with invalid session")
			m.clearCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RedirectIfAuthenticated sends signed-in users away from the login and
// register pages to the province list.
func (m *Middleware) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
			if _, err := m.sessions.Validate(r.Context(), cookie.Value); err == nil {
				http.Redirect(w, r, "/provinsi", http.StatusFound)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// clearCookie expires the session cookie on the client.
func (m *Middleware) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
