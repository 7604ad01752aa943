package repository

import "errors"

// Repository errors
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrForeignKeyViolation indicates a write referenced a missing row.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
