package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/session"
)

// SessionService handles login and logout on top of a session store.
type SessionService struct {
	userService *UserService
	store       session.Store
	ttl         time.Duration
	logger      zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(userService *UserService, store session.Store, ttl time.Duration, logger zerolog.Logger) *SessionService {
	return &SessionService{
		userService: userService,
		store:       store,
		ttl:         ttl,
		logger:      logger.With().Str("service", "session").Logger(),
	}
}

// LoginInput contains the credentials submitted at login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput contains the created session.
type LoginOutput struct {
	Session *domain.Session
}

// Login verifies credentials and creates a session.
// Returns ErrInvalidCredentials for any credential failure.
func (s *SessionService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := s.userService.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Create(ctx, sess, s.ttl); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to create session")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Time("expires_at", sess.ExpiresAt).
		Msg("session created")

	return &LoginOutput{Session: sess}, nil
}

// Validate looks up a session by token.
// Returns domain.ErrSessionNotFound for unknown or expired tokens.
func (s *SessionService) Validate(ctx context.Context, token string) (*domain.Session, error) {
	return s.store.Get(ctx, token)
}

// Logout destroys the session for the given token.
// Logging out an unknown token is not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if err := s.store.Destroy(ctx, token); err != nil {
		s.logger.Error().Err(err).Msg("failed to destroy session")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Msg("session destroyed")
	return nil
}
