package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/repository"
)

// districtRepository implements repository.DistrictRepository for SQLite.
type districtRepository struct {
	db *DB
}

// NewDistrictRepository creates a new SQLite district repository.
func NewDistrictRepository(db *DB) repository.DistrictRepository {
	return &districtRepository{db: db}
}

// Create creates a new district.
func (r *districtRepository) Create(ctx context.Context, district *domain.District) error {
	query := `
		INSERT INTO kabupaten (provinsi_id, nama, diresmikan, photo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		district.ProvinsiID,
		district.Nama,
		district.Diresmikan.Format(time.RFC3339),
		district.Photo,
		district.CreatedAt.Format(time.RFC3339),
		district.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: province %d", repository.ErrForeignKeyViolation, district.ProvinsiID)
		}
		return fmt.Errorf("failed to create district: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	district.ID = id

	return nil
}

// GetByID retrieves a district by ID.
func (r *districtRepository) GetByID(ctx context.Context, id int64) (*domain.District, error) {
	query := `
		SELECT id, provinsi_id, nama, diresmikan, photo, created_at, updated_at
		FROM kabupaten
		WHERE id = ?
	`

	district := &domain.District{}
	var diresmikan, createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&district.ID,
		&district.ProvinsiID,
		&district.Nama,
		&diresmikan,
		&district.Photo,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrDistrictNotFound
		}
		return nil, fmt.Errorf("failed to get district: %w", err)
	}

	district.Diresmikan, _ = time.Parse(time.RFC3339, diresmikan)
	district.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	district.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

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

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	defer rows.Close()

	var districts []*domain.District
	for rows.Next() {
		district := &domain.District{Provinsi: &domain.Province{}}
		var dDiresmikan, dCreated, dUpdated string
		var pDiresmikan, pCreated, pUpdated string

		err := rows.Scan(
			&district.ID,
			&district.ProvinsiID,
			&district.Nama,
			&dDiresmikan,
			&district.Photo,
			&dCreated,
			&dUpdated,
			&district.Provinsi.ID,
			&district.Provinsi.UserID,
			&district.Provinsi.Nama,
			&pDiresmikan,
			&district.Provinsi.Photo,
			&district.Provinsi.Pulau,
			&pCreated,
			&pUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}

		district.Diresmikan, _ = time.Parse(time.RFC3339, dDiresmikan)
		district.CreatedAt, _ = time.Parse(time.RFC3339, dCreated)
		district.UpdatedAt, _ = time.Parse(time.RFC3339, dUpdated)
		district.Provinsi.Diresmikan, _ = time.Parse(time.RFC3339, pDiresmikan)
		district.Provinsi.CreatedAt, _ = time.Parse(time.RFC3339, pCreated)
		district.Provinsi.UpdatedAt, _ = time.Parse(time.RFC3339, pUpdated)

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
		SET provinsi_id = ?, nama = ?, diresmikan = ?, photo = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		district.ProvinsiID,
		district.Nama,
		district.Diresmikan.Format(time.RFC3339),
		district.Photo,
		district.UpdatedAt.Format(time.RFC3339),
		district.ID,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: province %d", repository.ErrForeignKeyViolation, district.ProvinsiID)
		}
		return fmt.Errorf("failed to update district: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrDistrictNotFound
	}

	return nil
}

// Delete deletes a district by ID.
func (r *districtRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM kabupaten WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete district: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrDistrictNotFound
	}

	return nil
}

// Ensure districtRepository implements repository.DistrictRepository.
var _ repository.DistrictRepository = (*districtRepository)(nil)
