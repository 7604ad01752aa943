// Package domain contains the core business entities for Wilayah.
package domain

import (
	"time"
)

// District (kabupaten) is a sub-region record belonging to exactly one
// province. Districts form a shared registry: any authenticated user may
// view and modify them, regardless of who owns the parent province.
type District struct {
	// ID is the unique identifier for the district.
	ID int64 `json:"id"`

	// ProvinsiID is the ID of the parent province.
	ProvinsiID int64 `json:"provinsi_id"`

	// Nama is the district name, e.g. "Bandung".
	Nama string `json:"nama"`

	// Diresmikan is the official establishment date.
	Diresmikan time.Time `json:"diresmikan"`

	// Photo is a reference to an image (URL, filename, or storage key).
	Photo string `json:"photo"`

	// CreatedAt is the timestamp when the district was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the district was last updated.
	UpdatedAt time.Time `json:"updated_at"`

	// Provinsi is the parent province, populated by list queries that
	// join the relation for display. Nil when not loaded.
	Provinsi *Province `json:"provinsi,omitempty"`
}

// NewDistrict creates a new District under the given province.
func NewDistrict(provinsiID int64, nama string, diresmikan time.Time, photo string) *District {
	now := time.Now().UTC()
	return &District{
		ProvinsiID: provinsiID,
		Nama:       nama,
		Diresmikan: diresmikan,
		Photo:      photo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
