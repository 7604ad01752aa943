package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/repository"
)

// provinceRepository implements repository.ProvinceRepository for PostgreSQL.
type provinceRepository struct {
	db *DB
}

// NewProvinceRepository creates a new PostgreSQL province repository.
func NewProvinceRepository(db *DB) repository.ProvinceRepository {
	return &provinceRepository{db: db}
}

const provinceColumns = `id, user_id, nama, diresmikan, photo, pulau, created_at, updated_at`

// Create creates a new province.
func (r *provinceRepository) Create(ctx context.Context, province *domain.Province) error {
	query := `
		INSERT INTO provinsi (user_id, nama, diresmikan, photo, pulau, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		province.UserID,
		province.Nama,
		province.Diresmikan,
		province.Photo,
		province.Pulau,
		province.CreatedAt,
		province.UpdatedAt,
	).Scan(&province.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d", repository.ErrForeignKeyViolation, province.UserID)
		}
		return fmt.Errorf("failed to create province: %w", err)
	}

	return nil
}

// GetByID retrieves a province by ID regardless of owner.
func (r *provinceRepository) GetByID(ctx context.Context, id int64) (*domain.Province, error) {
	query := `SELECT ` + provinceColumns + ` FROM provinsi WHERE id = $1`
	return r.scanProvince(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByIDForUser retrieves a province by ID scoped to its owner.
func (r *provinceRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Province, error) {
	query := `SELECT ` + provinceColumns + ` FROM provinsi WHERE id = $1 AND user_id = $2`
	return r.scanProvince(r.db.Pool.QueryRow(ctx, query, id, userID))
}

// ListByUser returns all provinces owned by the given user.
func (r *provinceRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Province, error) {
	query := `SELECT ` + provinceColumns + ` FROM provinsi WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provinces: %w", err)
	}
	defer rows.Close()

	var provinces []*domain.Province
	for rows.Next() {
		province, err := r.scanProvince(rows)
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
	rows, err := r.db.Pool.Query(ctx, `SELECT id, nama FROM provinsi ORDER BY nama`)
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
		SET nama = $1, diresmikan = $2, photo = $3, pulau = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		province.Nama,
		province.Diresmikan,
		province.Photo,
		province.Pulau,
		province.UpdatedAt,
		province.ID,
		province.UserID,
	)

	if err != nil {
		return fmt.Errorf("failed to update province: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrProvinceNotFound
	}

	return nil
}

// Delete deletes a province by ID, scoped to its owner.
func (r *provinceRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM provinsi WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete province: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrProvinceNotFound
	}

	return nil
}

// Exists checks if a province with the given ID exists.
func (r *provinceRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM provinsi WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check province existence: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *provinceRepository) scanProvince(row rowScanner) (*domain.Province, error) {
	province := &domain.Province{}
	err := row.Scan(
		&province.ID,
		&province.UserID,
		&province.Nama,
		&province.Diresmikan,
		&province.Photo,
		&province.Pulau,
		&province.CreatedAt,
		&province.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrProvinceNotFound
		}
		return nil, fmt.Errorf("failed to scan province: %w", err)
	}

	return province, nil
}

// Ensure provinceRepository implements repository.ProvinceRepository.
var _ repository.ProvinceRepository = (*provinceRepository)(nil)
