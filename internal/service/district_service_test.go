package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func newDistrictFixtures(t *testing.T) (*DistrictService, *MockProvinceRepository) {
	t.Helper()
	provinces := NewMockProvinceRepository()
	districts := NewMockDistrictRepository(provinces)
	return NewDistrictService(districts, provinces, zerolog.Nop()), provinces
}

func TestDistrictService_Create(t *testing.T) {
	svc, provinces := newDistrictFixtures(t)
	ctx := context.Background()

	provSvc := NewProvinceService(provinces, zerolog.Nop())
	provOutput, err := provSvc.Create(ctx, CreateProvinceInput{
		UserID: 1, Nama: "Jawa Barat", Diresmikan: mustDate(t, "2000-01-01"), Pulau: "Jawa",
	})
	if err != nil {
		t.Fatalf("create province failed: %v", err)
	}

	tests := []struct {
		name    string
		input   CreateDistrictInput
		wantErr error
	}{
		{
			name:  "valid district",
			input: CreateDistrictInput{ProvinsiID: provOutput.Province.ID, Nama: "Bandung", Diresmikan: mustDate(t, "1810-09-25")},
		},
		{
			name:    "unknown province",
			input:   CreateDistrictInput{ProvinsiID: 999, Nama: "Bandung", Diresmikan: mustDate(t, "1810-09-25")},
			wantErr: ErrProvinceNotFound,
		},
		{
			name:    "missing nama",
			input:   CreateDistrictInput{ProvinsiID: provOutput.Province.ID, Diresmikan: mustDate(t, "1810-09-25")},
			wantErr: ErrInvalidDistrict,
		},
		{
			name:    "missing province",
			input:   CreateDistrictInput{Nama: "Bandung", Diresmikan: mustDate(t, "1810-09-25")},
			wantErr: ErrInvalidDistrict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := svc.Create(ctx, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.District.ID == 0 {
				t.Error("expected district ID to be assigned")
			}
		})
	}
}

func TestDistrictService_ListJoinsProvince(t *testing.T) {
	svc, provinces := newDistrictFixtures(t)
	ctx := context.Background()

	provSvc := NewProvinceService(provinces, zerolog.Nop())
	provOutput, err := provSvc.Create(ctx, CreateProvinceInput{
		UserID: 1, Nama: "Jawa Barat", Diresmikan: mustDate(t, "2000-01-01"), Pulau: "Jawa",
	})
	if err != nil {
		t.Fatalf("create province failed: %v", err)
	}

	if _, err := svc.Create(ctx, CreateDistrictInput{
		ProvinsiID: provOutput.Province.ID, Nama: "Bandung", Diresmikan: mustDate(t, "1810-09-25"),
	}); err != nil {
		t.Fatalf("create district failed: %v", err)
	}

	districts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(districts) != 1 {
		t.Fatalf("expected 1 district, got %d", len(districts))
	}
	if districts[0].Provinsi == nil || districts[0].Provinsi.Nama != "Jawa Barat" {
		t.Errorf("expected joined province Jawa Barat, got %+v", districts[0].Provinsi)
	}
}

func TestDistrictService_UpdateReparent(t *testing.T) {
	svc, provinces := newDistrictFixtures(t)
	ctx := context.Background()

	provSvc := NewProvinceService(provinces, zerolog.Nop())
	first, _ := provSvc.Create(ctx, CreateProvinceInput{
		UserID: 1, Nama: "Jawa Barat", Diresmikan: mustDate(t, "2000-01-01"), Pulau: "Jawa",
	})
	second, _ := provSvc.Create(ctx, CreateProvinceInput{
		UserID: 1, Nama: "Jawa Tengah", Diresmikan: mustDate(t, "1950-08-15"), Pulau: "Jawa",
	})

	output, err := svc.Create(ctx, CreateDistrictInput{
		ProvinsiID: first.Province.ID, Nama: "Bandung", Diresmikan: mustDate(t, "1810-09-25"),
	})
	if err != nil {
		t.Fatalf("create district failed: %v", err)
	}

	// Move to another province.
	err = svc.Update(ctx, UpdateDistrictInput{
		ID: output.District.ID, ProvinsiID: second.Province.ID, Nama: "Bandung", Diresmikan: mustDate(t, "1810-09-25"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := svc.Get(ctx, output.District.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ProvinsiID != second.Province.ID {
		t.Errorf("expected district moved to province %d, got %d", second.Province.ID, got.ProvinsiID)
	}

	// Moving to an unknown province fails.
	err = svc.Update(ctx, UpdateDistrictInput{
		ID: output.District.ID, ProvinsiID: 999, Nama: "Bandung", Diresmikan: mustDate(t, "1810-09-25"),
	})
	if !errors.Is(err, ErrProvinceNotFound) {
		t.Errorf("expected ErrProvinceNotFound for unknown target province, got %v", err)
	}
}

func TestDistrictService_Delete(t *testing.T) {
	svc, provinces := newDistrictFixtures(t)
	ctx := context.Background()

	provSvc := NewProvinceService(provinces, zerolog.Nop())
	prov, _ := provSvc.Create(ctx, CreateProvinceInput{
		UserID: 1, Nama: "Jawa Barat", Diresmikan: mustDate(t, "2000-01-01"), Pulau: "Jawa",
	})
	output, err := svc.Create(ctx, CreateDistrictInput{
		ProvinsiID: prov.Province.ID, Nama: "Bandung", Diresmikan: mustDate(t, "1810-09-25"),
	})
	if err != nil {
		t.Fatalf("create district failed: %v", err)
	}

	if err := svc.Delete(ctx, output.District.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, output.District.ID); !errors.Is(err, ErrDistrictNotFound) {
		t.Errorf("expected ErrDistrictNotFound on second delete, got %v", err)
	}
}
