package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
)

// newTestDB opens a migrated in-memory database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := NewDB(ctx, DefaultConfig(":memory:"), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// newTestUser inserts a user and returns it.
func newTestUser(t *testing.T, db *DB, username, email string) *domain.User {
	t.Helper()

	user := domain.NewUser(username, email, "$2a$10$fakehash")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return d
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	newTestUser(t, db, "alice", "alice@x.com")

	dup := domain.NewUser("alice2", "alice@x.com", "$2a$10$other")
	err := repo.Create(ctx, dup)
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user after duplicate insert, got %d", len(users))
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := newTestUser(t, db, "alice", "alice@x.com")

	got, err := repo.GetByEmail(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if got.ID != created.ID || got.Username != "alice" {
		t.Errorf("unexpected user: %+v", got)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown email, got %v", err)
	}
}

func TestProvinceRepository_OwnerScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewProvinceRepository(db)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice", "alice@x.com")
	bob := newTestUser(t, db, "bob", "bob@x.com")

	province := domain.NewProvince(alice.ID, "Jawa Barat", mustDate(t, "2000-01-01"), "", "Jawa")
	if err := repo.Create(ctx, province); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Owner sees it.
	own, err := repo.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(own) != 1 || own[0].Nama != "Jawa Barat" {
		t.Fatalf("expected alice to see her province, got %+v", own)
	}

	// Other users see nothing.
	other, err := repo.ListByUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected bob to see no provinces, got %d", len(other))
	}

	// Scoped get behaves like not-found for the wrong owner.
	if _, err := repo.GetByIDForUser(ctx, province.ID, bob.ID); !errors.Is(err, domain.ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound for non-owner get, got %v", err)
	}

	// Scoped update refuses the wrong owner.
	stolen := *province
	stolen.UserID = bob.ID
	stolen.Nama = "Hijacked"
	if err := repo.Update(ctx, &stolen); !errors.Is(err, domain.ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound for non-owner update, got %v", err)
	}

	// Scoped delete refuses the wrong owner.
	if err := repo.Delete(ctx, province.ID, bob.ID); !errors.Is(err, domain.ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound for non-owner delete, got %v", err)
	}
}

func TestProvinceRepository_DoubleDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewProvinceRepository(db)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice", "alice@x.com")
	province := domain.NewProvince(alice.ID, "Bali", mustDate(t, "1958-08-14"), "", "Bali")
	if err := repo.Create(ctx, province); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, province.ID, alice.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}

	// Second delete reports not-found instead of failing hard.
	if err := repo.Delete(ctx, province.ID, alice.ID); !errors.Is(err, domain.ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound on second delete, got %v", err)
	}
}

func TestDistrictRepository_ListWithProvince(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice", "alice@x.com")
	provRepo := NewProvinceRepository(db)
	distRepo := NewDistrictRepository(db)

	province := domain.NewProvince(alice.ID, "Jawa Barat", mustDate(t, "2000-01-01"), "", "Jawa")
	if err := provRepo.Create(ctx, province); err != nil {
		t.Fatalf("create province failed: %v", err)
	}

	district := domain.NewDistrict(province.ID, "Bandung", mustDate(t, "1810-09-25"), "")
	if err := distRepo.Create(ctx, district); err != nil {
		t.Fatalf("create district failed: %v", err)
	}

	districts, err := distRepo.ListWithProvince(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(districts) != 1 {
		t.Fatalf("expected 1 district, got %d", len(districts))
	}
	got := districts[0]
	if got.Nama != "Bandung" {
		t.Errorf("expected district Bandung, got %s", got.Nama)
	}
	if got.Provinsi == nil || got.Provinsi.Nama != "Jawa Barat" {
		t.Errorf("expected joined province Jawa Barat, got %+v", got.Provinsi)
	}
}

func TestDistrictRepository_CascadeOnProvinceDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice", "alice@x.com")
	provRepo := NewProvinceRepository(db)
	distRepo := NewDistrictRepository(db)

	province := domain.NewProvince(alice.ID, "Sumatera Utara", mustDate(t, "1948-04-15"), "", "Sumatera")
	if err := provRepo.Create(ctx, province); err != nil {
		t.Fatalf("create province failed: %v", err)
	}
	district := domain.NewDistrict(province.ID, "Medan", mustDate(t, "1590-07-01"), "")
	if err := distRepo.Create(ctx, district); err != nil {
		t.Fatalf("create district failed: %v", err)
	}

	if err := provRepo.Delete(ctx, province.ID, alice.ID); err != nil {
		t.Fatalf("delete province failed: %v", err)
	}

	if _, err := distRepo.GetByID(ctx, district.ID); !errors.Is(err, domain.ErrDistrictNotFound) {
		t.Errorf("expected district to cascade with its province, got %v", err)
	}
}
