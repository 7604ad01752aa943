package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/repository"
)

// provinceRepository implements repository.ProvinceRepository for SQLite.
type provinceRepository struct {
	db *DB
}

// NewProvinceRepository creates a new SQLite province repository.
func NewProvinceRepository(db *DB) repository.ProvinceRepository {
	return &provinceRepository{db: db}
}

const provinceColumns = `id, user_id, nama, diresmikan, photo, pulau, created_at, updated_at`

// Create creates a new province.
func (r *provinceRepository) Create(ctx context.Context, province *domain.Province) error {
	query := `
		INSERT INTO provinsi (user_id, nama, diresmikan, photo, pulau, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		province.UserID,
		province.Nama,
		province.Diresmikan.Format(time.RFC3339),
		province.Photo,
		province.Pulau,
		province.CreatedAt.Format(time.RFC3339),
		province.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d", repository.ErrForeignKeyViolation, province.UserID)
		}
		return fmt.Errorf("failed to create province: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	province.ID = id

	return nil
}

// GetByID retrieves a province by ID regardless of owner.
func (r *provinceRepository) GetByID(ctx context.Context, id int64) (*domain.Province, error) {
	query := `SELECT ` + provinceColumns + ` FROM provinsi WHERE id = ?`
	return scanProvince(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDForUser retrieves a province by ID scoped to its owner.
func (r *provinceRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Province, error) {
	query := `SELECT ` + provinceColumns + ` FROM provinsi WHERE id = ? AND user_id = ?`
	return scanProvince(r.db.QueryRowContext(ctx, query, id, userID))
}

// ListByUser returns all provinces owned by the given user.
func (r *provinceRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Province, error) {
	query := `SELECT ` + provinceColumns + ` FROM provinsi WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provinces: %w", err)
	}
	defer rows.Close()

	var provinces []*domain.Province
	for rows.Next() {
		province, err := scanProvince(rows)
		if err != nil {
			return nil, err
		}
		provinces = append(provinces, province)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provinces: %w", err)
	}

	return provinces, nil
}

// ListRefs returns (id, nama) pairs for all provinces.
func (r *provinceRepository) ListRefs(ctx context.Context) ([]*domain.ProvinceRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nama FROM provinsi ORDER BY nama`)
	if err != nil {
		return nil, fmt.Errorf("failed to list province refs: %w", err)
	}
	defer rows.Close()

	var refs []*domain.ProvinceRef
	for rows.Next() {
		ref := &domain.ProvinceRef{}
		if err := rows.Scan(&ref.ID, &ref.Nama); err != nil {
			return nil, fmt.Errorf("failed to scan province ref: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating province refs: %w", err)
	}

	return refs, nil
}

// Update updates the mutable fields of a province, scoped to its owner.
func (r *provinceRepository) Update(ctx context.Context, province *domain.Province) error {
	province.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE provinsi
		SET nama = ?, diresmikan = ?, photo = ?, pulau = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		province.Nama,
		province.Diresmikan.Format(time.RFC3339),
		province.Photo,
		province.Pulau,
		province.UpdatedAt.Format(time.RFC3339),
		province.ID,
		province.UserID,
	)

	if err != nil {
		return fmt.Errorf("failed to update province: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrProvinceNotFound
	}

	return nil
}

// Delete deletes a province by ID, scoped to its owner.
func (r *provinceRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM provinsi WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete province: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrProvinceNotFound
	}

	return nil
}

// Exists checks if a province with the given ID exists.
func (r *provinceRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM provinsi WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check province existence: %w", err)
	}
	return count > 0, nil
}

// scanProvince scans a province row.
func scanProvince(row rowScanner) (*domain.Province, error) {
	province := &domain.Province{}
	var diresmikan, createdAt, updatedAt string

	err := row.Scan(
		&province.ID,
		&province.UserID,
		&province.Nama,
		&diresmikan,
		&province.Photo,
		&province.Pulau,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrProvinceNotFound
		}
		return nil, fmt.Errorf("failed to scan province: %w", err)
	}

	province.Diresmikan, _ = time.Parse(time.RFC3339, diresmikan)
	province.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	province.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return province, nil
}

// Ensure provinceRepository implements repository.ProvinceRepository.
var _ repository.ProvinceRepository = (*provinceRepository)(nil)
