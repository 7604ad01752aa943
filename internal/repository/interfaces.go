// Package repository defines data access interfaces for Wilayah.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/prn-tf/wilayah/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// Delete deletes a user by ID. Owned provinces cascade.
	Delete(ctx context.Context, id int64) error
}

// =============================================================================
// Province Repository
// =============================================================================

// ProvinceRepository defines the interface for province data access.
type ProvinceRepository interface {
	// Create creates a new province.
	Create(ctx context.Context, province *domain.Province) error

	// GetByID retrieves a province by ID regardless of owner.
	GetByID(ctx context.Context, id int64) (*domain.Province, error)

	// GetByIDForUser retrieves a province by ID scoped to its owner.
	// Returns domain.ErrProvinceNotFound when the id exists but belongs
	// to a different user, indistinguishable from a missing id.
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Province, error)

	// ListByUser returns all provinces owned by the given user.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Province, error)

	// ListRefs returns (id, nama) pairs for all provinces, used to
	// populate the selector on district forms.
	ListRefs(ctx context.Context) ([]*domain.ProvinceRef, error)

	// Update updates the mutable fields of a province, scoped to its owner.
	Update(ctx context.Context, province *domain.Province) error

	// Delete deletes a province by ID, scoped to its owner.
	// Districts under the province cascade.
	Delete(ctx context.Context, id, userID int64) error

	// Exists checks if a province with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

// =============================================================================
// District Repository
// =============================================================================

// DistrictRepository defines the interface for district data access.
// Districts are not owner-scoped; see the ownership policy in DESIGN.md.
type DistrictRepository interface {
	// Create creates a new district.
	Create(ctx context.Context, district *domain.District) error

	// GetByID retrieves a district by ID.
	GetByID(ctx context.Context, id int64) (*domain.District, error)

	// ListWithProvince returns all districts with the parent province
	// relation populated for display.
	ListWithProvince(ctx context.Context) ([]*domain.District, error)

	// Update updates the mutable fields of a district, including
	// re-parenting to a different province.
	Update(ctx context.Context, district *domain.District) error

	// Delete deletes a district by ID.
	Delete(ctx context.Context, id int64) error
}

// =============================================================================
// Bundle
// =============================================================================

// Repositories holds all repository instances for one database backend.
type Repositories struct {
	User     UserRepository
	Province ProvinceRepository
	District DistrictRepository
}

// DatabaseHealth is an interface for database health checks.
// Both the sqlite and postgres DB wrappers satisfy it.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}
