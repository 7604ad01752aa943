package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/pkg/crypto"
	"github.com/prn-tf/wilayah/internal/repository"
)

// UserService handles account registration and credential checks.
type UserService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// RegisterInput contains the data needed to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterOutput contains the result of registering an account.
type RegisterOutput struct {
	User *domain.User
}

// Register creates a new user account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	// Validate input
	if err := s.validateRegisterInput(input); err != nil {
		return nil, err
	}

	// Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to check email existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrEmailAlreadyExists, input.Email)
	}

	// Hash password
	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	// Create user
	user := domain.NewUser(input.Username, input.Email, passwordHash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index is the authority; the existence check above races.
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", ErrEmailAlreadyExists, input.Email)
		}
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user registered")

	return &RegisterOutput{User: user}, nil
}

// Authenticate verifies an email/password pair and returns the user.
// All failure modes map to ErrInvalidCredentials so callers never learn
// whether the email is registered.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Log but don't expose whether the email exists
		s.logger.Debug().Str("email", email).Msg("user not found during authentication")
		return nil, ErrInvalidCredentials
	}

	if !crypto.CheckPassword(user.PasswordHash, password) {
		s.logger.Debug().Str("email", email).Msg("invalid password during authentication")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user authenticated")

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return user, nil
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return users, nil
}

// Delete removes a user account. Owned provinces cascade away with it.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// validateRegisterInput validates registration data.
func (s *UserService) validateRegisterInput(input RegisterInput) error {
	if len(input.Username) < 3 || len(input.Username) > 255 {
		return ErrInvalidUsername
	}

	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidEmail
	}

	if input.Password == "" {
		return ErrInvalidPassword
	}

	return nil
}
