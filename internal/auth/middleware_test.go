package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
)

// stubValidator resolves a fixed set of tokens.
type stubValidator struct {
	sessions map[string]*domain.Session
}

func (s *stubValidator) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func newTestMiddleware() *Middleware {
	validator := &stubValidator{
		sessions: map[string]*domain.Session{
			"good-token": {
				Token:     "good-token",
				UserID:    42,
				Username:  "alice",
				ExpiresAt: time.Now().Add(time.Hour),
			},
		},
	}
	return NewMiddleware(validator, "session", zerolog.Nop())
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantUserID int64
	}{
		{
			name:       "no cookie redirects to login",
			wantStatus: http.StatusFound,
		},
		{
			name:       "unknown token redirects to login",
			cookie:     &http.Cookie{Name: "session", Value: "bad-token"},
			wantStatus: http.StatusFound,
		},
		{
			name:       "valid token passes through",
			cookie:     &http.Cookie{Name: "session", Value: "good-token"},
			wantStatus: http.StatusOK,
			wantUserID: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			handler := newTestMiddleware().RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/provinsi", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusFound {
				if loc := rec.Header().Get("Location"); loc != "/login" {
					t.Errorf("expected redirect to /login, got %q", loc)
				}
				return
			}
			if gotUserID != tt.wantUserID {
				t.Errorf("expected user ID %d in context, got %d", tt.wantUserID, gotUserID)
			}
		})
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	handler := newTestMiddleware().RedirectIfAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Signed-in users are bounced to the province list.
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/provinsi" {
		t.Errorf("expected redirect to /provinsi, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	// Anonymous users see the page.
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for anonymous user, got %d", rec.Code)
	}
}
