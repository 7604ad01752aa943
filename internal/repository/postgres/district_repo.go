package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/repository"
)

// districtRepository implements repository.DistrictRepository for PostgreSQL.
type districtRepository struct {
	db *DB
}

// NewDistrictRepository creates a new PostgreSQL district repository.
func NewDistrictRepository(db *DB) repository.DistrictRepository {
	return &districtRepository{db: db}
}

// Create creates a new district.
func (r *districtRepository) Create(ctx context.Context, district *domain.District) error {
	query := `
		INSERT INTO kabupaten (provinsi_id, nama, diresmikan, photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		district.ProvinsiID,
		district.Nama,
		district.Diresmikan,
		district.Photo,
		district.CreatedAt,
		district.UpdatedAt,
	).Scan(&district.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: province %d", repository.ErrForeignKeyViolation, district.ProvinsiID)
		}
		return fmt.Errorf("failed to create district: %w", err)
	}

	return nil
}

// GetByID retrieves a district by ID.
func (r *districtRepository) GetByID(ctx context.Context, id int64) (*domain.District, error) {
	query := `
		SELECT id, provinsi_id, nama, diresmikan, photo, created_at, updated_at
		FROM kabupaten
		WHERE id = $1
	`

	district := &domain.District{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&district.ID,
		&district.ProvinsiID,
		&district.Nama,
		&district.Diresmikan,
		&district.Photo,
		&district.CreatedAt,
		&district.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrDistrictNotFound
		}
		return nil, fmt.Errorf("failed to get district: %w", err)
	}

	return district, nil
}

// ListWithProvince returns all districts joined to their parent province.
func (r *districtRepository) ListWithProvince(ctx context.Context) ([]*domain.District, error) {
	query := `
		SELECT k.id, k.provinsi_id, k.nama, k.diresmikan, k.photo, k.created_at, k.updated_at,
		       p.id, p.user_id, p.nama, p.diresmikan, p.photo, p.pulau, p.created_at, p.updated_at
		FROM kabupaten k
		JOIN provinsi p ON p.id = k.provinsi_id
		ORDER BY k.id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	defer rows.Close()

	var districts []*domain.District
	for rows.Next() {
		district := &domain.District{Provinsi: &domain.Province{}}
		err := rows.Scan(
			&district.ID,
			&district.ProvinsiID,
			&district.Nama,
			&district.Diresmikan,
			&district.Photo,
			&district.CreatedAt,
			&district.UpdatedAt,
			&district.Provinsi.ID,
			&district.Provinsi.UserID,
			&district.Provinsi.Nama,
			&district.Provinsi.Diresmikan,
			&district.Provinsi.Photo,
			&district.Provinsi.Pulau,
			&district.Provinsi.CreatedAt,
			&district.Provinsi.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}
		districts = append(districts, district)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating districts: %w", err)
	}

	return districts, nil
}

// Update updates the mutable fields of a district, including its parent province.
func (r *districtRepository) Update(ctx context.Context, district *domain.District) error {
	district.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE kabupaten
		SET provinsi_id = $1, nama = $2, diresmikan = $3, photo = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		district.ProvinsiID,
		district.Nama,
		district.Diresmikan,
		district.Photo,
		district.UpdatedAt,
		district.ID,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: province %d", repository.ErrForeignKeyViolation, district.ProvinsiID)
		}
		return fmt.Errorf("failed to update district: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDistrictNotFound
	}

	return nil
}

// Delete deletes a district by ID.
func (r *districtRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM kabupaten WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete district: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDistrictNotFound
	}

	return nil
}

// Ensure districtRepository implements repository.DistrictRepository.
var _ repository.DistrictRepository = (*districtRepository)(nil)
