package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/repository"
)

func TestNewDB_AppliesPragmas(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var foreignKeys int
	if err := db.db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("failed to read foreign_keys pragma: %v", err)
	}
	if foreignKeys != 1 {
		t.Errorf("expected foreign_keys=1, got %d", foreignKeys)
	}

	var busyTimeout int
	if err := db.db.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatalf("failed to read busy_timeout pragma: %v", err)
	}
	if busyTimeout != DefaultConfig(":memory:").BusyTimeout {
		t.Errorf("expected busy_timeout=%d, got %d", DefaultConfig(":memory:").BusyTimeout, busyTimeout)
	}
}

func TestDistrictRepository_ForeignKeyViolation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	district := domain.NewDistrict(999, "Medan", mustDate(t, "1590-07-01"), "")
	err := NewDistrictRepository(db).Create(ctx, district)
	if !errors.Is(err, repository.ErrForeignKeyViolation) {
		t.Errorf("expected a foreign key violation for an unknown province, got %v", err)
	}
}
