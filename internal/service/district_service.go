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

// DistrictService handles district CRUD. Districts form a shared registry:
// any signed-in user may list and edit them regardless of who owns the
// parent province.
type DistrictService struct {
	districtRepo repository.DistrictRepository
	provinceRepo repository.ProvinceRepository
	logger       zerolog.Logger
}

// NewDistrictService creates a new DistrictService.
func NewDistrictService(
	districtRepo repository.DistrictRepository,
	provinceRepo repository.ProvinceRepository,
	logger zerolog.Logger,
) *DistrictService {
	return &DistrictService{
		districtRepo: districtRepo,
		provinceRepo: provinceRepo,
		logger:       logger.With().Str("service", "district").Logger(),
	}
}

// CreateDistrictInput contains the data needed to create a district.
type CreateDistrictInput struct {
	ProvinsiID int64
	Nama       string
	Diresmikan time.Time
	Photo      string
}

// CreateDistrictOutput contains the created district.
type CreateDistrictOutput struct {
	District *domain.District
}

// UpdateDistrictInput contains the data needed to update a district.
type UpdateDistrictInput struct {
	ID         int64
	ProvinsiID int64
	Nama       string
	Diresmikan time.Time
	Photo      string
}

// Create creates a new district under an existing province.
func (s *DistrictService) Create(ctx context.Context, input CreateDistrictInput) (*CreateDistrictOutput, error) {
	if input.Nama == "" || input.Diresmikan.IsZero() || input.ProvinsiID == 0 {
		return nil, ErrInvalidDistrict
	}

	// The referenced province must exist before we attempt the insert.
	exists, err := s.provinceRepo.Exists(ctx, input.ProvinsiID)
	if err != nil {
		s.logger.Error().Err(err).Int64("provinsi_id", input.ProvinsiID).Msg("failed to check province existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %d", ErrProvinceNotFound, input.ProvinsiID)
	}

	district := domain.NewDistrict(input.ProvinsiID, input.Nama, input.Diresmikan, input.Photo)

	if err := s.districtRepo.Create(ctx, district); err != nil {
		// The FK constraint is the authority; the existence check above races.
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: id %d", ErrProvinceNotFound, input.ProvinsiID)
		}
		s.logger.Error().Err(err).Str("nama", input.Nama).Msg("failed to create district")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("district_id", district.ID).
		Int64("provinsi_id", input.ProvinsiID).
		Str("nama", district.Nama).
		Msg("district created")

	return &CreateDistrictOutput{District: district}, nil
}

// Get retrieves a district by ID.
func (s *DistrictService) Get(ctx context.Context, id int64) (*domain.District, error) {
	district, err := s.districtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDistrictNotFound) {
			return nil, ErrDistrictNotFound
		}
		s.logger.Error().Err(err).Int64("district_id", id).Msg("failed to get district")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return district, nil
}

// List returns all districts with their parent province joined in.
func (s *DistrictService) List(ctx context.Context) ([]*domain.District, error) {
	districts, err := s.districtRepo.ListWithProvince(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list districts")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return districts, nil
}

// Update updates a district, including moving it to a different province.
func (s *DistrictService) Update(ctx context.Context, input UpdateDistrictInput) error {
	if input.Nama == "" || input.Diresmikan.IsZero() || input.ProvinsiID == 0 {
		return ErrInvalidDistrict
	}

	exists, err := s.provinceRepo.Exists(ctx, input.ProvinsiID)
	if err != nil {
		s.logger.Error().Err(err).Int64("provinsi_id", input.ProvinsiID).Msg("failed to check province existence")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !exists {
		return fmt.Errorf("%w: id %d", ErrProvinceNotFound, input.ProvinsiID)
	}

	district := &domain.District{
		ID:         input.ID,
		ProvinsiID: input.ProvinsiID,
		Nama:       input.Nama,
		Diresmikan: input.Diresmikan,
		Photo:      input.Photo,
	}

	if err := s.districtRepo.Update(ctx, district); err != nil {
		if errors.Is(err, domain.ErrDistrictNotFound) {
			return ErrDistrictNotFound
		}
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return fmt.Errorf("%w: id %d", ErrProvinceNotFound, input.ProvinsiID)
		}
		s.logger.Error().Err(err).Int64("district_id", input.ID).Msg("failed to update district")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("district_id", input.ID).
		Int64("provinsi_id", input.ProvinsiID).
		Msg("district updated")

	return nil
}

// Delete deletes a district by ID.
func (s *DistrictService) Delete(ctx context.Context, id int64) error {
	if err := s.districtRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrDistrictNotFound) {
			return ErrDistrictNotFound
		}
		s.logger.Error().Err(err).Int64("district_id", id).Msg("failed to delete district")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("district_id", id).Msg("district deleted")
	return nil
}
