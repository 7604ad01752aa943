package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/repository"
)

// ProvinceService handles province CRUD. Every operation is scoped to the
// owning user: users never see or touch provinces created by someone else.
type ProvinceService struct {
	provinceRepo repository.ProvinceRepository
	logger       zerolog.Logger
}

// NewProvinceService creates a new ProvinceService.
func NewProvinceService(provinceRepo repository.ProvinceRepository, logger zerolog.Logger) *ProvinceService {
	return &ProvinceService{
		provinceRepo: provinceRepo,
		logger:       logger.With().Str("service", "province").Logger(),
	}
}

// CreateProvinceInput contains the data needed to create a province.
type CreateProvinceInput struct {
	UserID     int64
	Nama       string
	Diresmikan time.Time
	Photo      string
	Pulau      string
}

// CreateProvinceOutput contains the created province.
type CreateProvinceOutput struct {
	Province *domain.Province
}

// UpdateProvinceInput contains the data needed to update a province.
type UpdateProvinceInput struct {
	ID         int64
	UserID     int64
	Nama       string
	Diresmikan time.Time
	Photo      string
	Pulau      string
}

// Create creates a new province owned by the given user.
func (s *ProvinceService) Create(ctx context.Context, input CreateProvinceInput) (*CreateProvinceOutput, error) {
	if input.Nama == "" || input.Pulau == "" || input.Diresmikan.IsZero() {
		return nil, ErrInvalidProvince
	}

	province := domain.NewProvince(input.UserID, input.Nama, input.Diresmikan, input.Photo, input.Pulau)

	if err := s.provinceRepo.Create(ctx, province); err != nil {
		s.logger.Error().Err(err).Str("nama", input.Nama).Msg("failed to create province")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("province_id", province.ID).
		Int64("user_id", input.UserID).
		Str("nama", province.Nama).
		Msg("province created")

	return &CreateProvinceOutput{Province: province}, nil
}

// Get retrieves a province by ID, scoped to its owner.
func (s *ProvinceService) Get(ctx context.Context, id, userID int64) (*domain.Province, error) {
	province, err := s.provinceRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProvinceNotFound) {
			return nil, ErrProvinceNotFound
		}
		s.logger.Error().Err(err).Int64("province_id", id).Msg("failed to get province")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return province, nil
}

// List returns all provinces owned by the given user.
func (s *ProvinceService) List(ctx context.Context, userID int64) ([]*domain.Province, error) {
	provinces, err := s.provinceRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list provinces")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return provinces, nil
}

// ListRefs returns (id, nama) pairs for every province, for select inputs.
// Districts may reference any province, so refs are not owner-scoped.
func (s *ProvinceService) ListRefs(ctx context.Context) ([]*domain.ProvinceRef, error) {
	refs, err := s.provinceRepo.ListRefs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list province refs")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return refs, nil
}

// Update updates a province, scoped to its owner.
func (s *ProvinceService) Update(ctx context.Context, input UpdateProvinceInput) error {
	if input.Nama == "" || input.Pulau == "" || input.Diresmikan.IsZero() {
		return ErrInvalidProvince
	}

	province := &domain.Province{
		ID:         input.ID,
		UserID:     input.UserID,
		Nama:       input.Nama,
		Diresmikan: input.Diresmikan,
		Photo:      input.Photo,
		Pulau:      input.Pulau,
	}

	if err := s.provinceRepo.Update(ctx, province); err != nil {
		if errors.Is(err, domain.ErrProvinceNotFound) {
			return ErrProvinceNotFound
		}
		s.logger.Error().Err(err).Int64("province_id", input.ID).Msg("failed to update province")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("province_id", input.ID).
		Int64("user_id", input.UserID).
		Msg("province updated")

	return nil
}

// Delete deletes a province, scoped to its owner.
// Districts of the province cascade away with it.
func (s *ProvinceService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.provinceRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrProvinceNotFound) {
			return ErrProvinceNotFound
		}
		s.logger.Error().Err(err).Int64("province_id", id).Msg("failed to delete province")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("province_id", id).
		Int64("user_id", userID).
		Msg("province deleted")

	return nil
}
