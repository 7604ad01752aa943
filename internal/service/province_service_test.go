package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return d
}

func TestProvinceService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateProvinceInput
		wantErr error
	}{
		{
			name:  "valid province",
			input: CreateProvinceInput{UserID: 1, Nama: "Jawa Barat", Diresmikan: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Pulau: "Jawa"},
		},
		{
			name:    "missing nama",
			input:   CreateProvinceInput{UserID: 1, Diresmikan: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Pulau: "Jawa"},
			wantErr: ErrInvalidProvince,
		},
		{
			name:    "missing pulau",
			input:   CreateProvinceInput{UserID: 1, Nama: "Jawa Barat", Diresmikan: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
			wantErr: ErrInvalidProvince,
		},
		{
			name:    "zero diresmikan",
			input:   CreateProvinceInput{UserID: 1, Nama: "Jawa Barat", Pulau: "Jawa"},
			wantErr: ErrInvalidProvince,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProvinceService(NewMockProvinceRepository(), zerolog.Nop())

			output, err := svc.Create(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Province.ID == 0 {
				t.Error("expected province ID to be assigned")
			}
			if output.Province.UserID != tt.input.UserID {
				t.Errorf("expected owner %d, got %d", tt.input.UserID, output.Province.UserID)
			}
		})
	}
}

func TestProvinceService_OwnerScoping(t *testing.T) {
	repo := NewMockProvinceRepository()
	svc := NewProvinceService(repo, zerolog.Nop())
	ctx := context.Background()

	output, err := svc.Create(ctx, CreateProvinceInput{
		UserID:     1,
		Nama:       "Jawa Barat",
		Diresmikan: mustDate(t, "2000-01-01"),
		Pulau:      "Jawa",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := output.Province.ID

	// Owner can read it.
	if _, err := svc.Get(ctx, id, 1); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}

	// Another user gets not-found, not forbidden.
	if _, err := svc.Get(ctx, id, 2); !errors.Is(err, ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound for non-owner get, got %v", err)
	}

	// Another user cannot update.
	err = svc.Update(ctx, UpdateProvinceInput{
		ID: id, UserID: 2, Nama: "Hijacked", Diresmikan: mustDate(t, "2000-01-01"), Pulau: "Jawa",
	})
	if !errors.Is(err, ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound for non-owner update, got %v", err)
	}

	// Another user cannot delete.
	if err := svc.Delete(ctx, id, 2); !errors.Is(err, ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound for non-owner delete, got %v", err)
	}

	// Owner list contains it, the other user's list does not.
	own, err := svc.List(ctx, 1)
	if err != nil || len(own) != 1 {
		t.Fatalf("expected 1 province for owner, got %d (err %v)", len(own), err)
	}
	other, err := svc.List(ctx, 2)
	if err != nil || len(other) != 0 {
		t.Fatalf("expected 0 provinces for non-owner, got %d (err %v)", len(other), err)
	}
}

func TestProvinceService_DeleteIdempotence(t *testing.T) {
	repo := NewMockProvinceRepository()
	svc := NewProvinceService(repo, zerolog.Nop())
	ctx := context.Background()

	output, err := svc.Create(ctx, CreateProvinceInput{
		UserID: 1, Nama: "Bali", Diresmikan: mustDate(t, "1958-08-14"), Pulau: "Bali",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, output.Province.ID, 1); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := svc.Delete(ctx, output.Province.ID, 1); !errors.Is(err, ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound on second delete, got %v", err)
	}
}
