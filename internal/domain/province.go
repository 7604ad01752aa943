// Package domain contains the core business entities for Wilayah.
package domain

import (
	"time"
)

// Province (provinsi) is a top-level administrative region record.
// Every province is owned by exactly one user; visibility and mutation
// are scoped to that owner.
type Province struct {
	// ID is the unique identifier for the province.
	ID int64 `json:"id"`

	// UserID is the ID of the user who owns this province.
	UserID int64 `json:"user_id"`

	// Nama is the province name, e.g. "Jawa Barat".
	Nama string `json:"nama"`

	// Diresmikan is the official establishment date.
	Diresmikan time.Time `json:"diresmikan"`

	// Photo is a reference to an image: a URL, a filename, or a key
	// returned by the photo storage backend.
	Photo string `json:"photo"`

	// Pulau is the island or region label, e.g. "Jawa".
	Pulau string `json:"pulau"`

	// CreatedAt is the timestamp when the province was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the province was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProvince creates a new Province owned by the given user.
func NewProvince(userID int64, nama string, diresmikan time.Time, photo, pulau string) *Province {
	now := time.Now().UTC()
	return &Province{
		UserID:     userID,
		Nama:       nama,
		Diresmikan: diresmikan,
		Photo:      photo,
		Pulau:      pulau,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ProvinceRef is a lightweight (id, nama) projection used to populate
// the province selector on district forms.
type ProvinceRef struct {
	ID   int64  `json:"id"`
	Nama string `json:"nama"`
}
