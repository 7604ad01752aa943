package sqlite

import (
	"github.com/prn-tf/wilayah/internal/repository"
)

// NewRepositories bundles all SQLite repositories over one connection.
func NewRepositories(db *DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Province: NewProvinceRepository(db),
		District: NewDistrictRepository(db),
	}
}
