package postgres

import (
	"github.com/prn-tf/wilayah/internal/repository"
)

// NewRepositories bundles all PostgreSQL repositories over one pool.
func NewRepositories(db *DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Province: NewProvinceRepository(db),
		District: NewDistrictRepository(db),
	}
}
