// Package domain contains the core business entities for Wilayah.
package domain

import "errors"

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists indicates a user with the same email exists.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials indicates authentication failed. Callers must
	// not distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ===========================================
	// Province Errors
	// ===========================================

	// ErrProvinceNotFound indicates the requested province does not exist,
	// or is not visible to the requesting user.
	ErrProvinceNotFound = errors.New("province not found")

	// ===========================================
	// District Errors
	// ===========================================

	// ErrDistrictNotFound indicates the requested district does not exist.
	ErrDistrictNotFound = errors.New("district not found")

	// ===========================================
	// Session Errors
	// ===========================================

	// ErrSessionNotFound indicates the token maps to no live session.
	// This is the normal "logged out" state, not a failure.
	ErrSessionNotFound = errors.New("session not found")

	// ===========================================
	// Photo Storage Errors
	// ===========================================

	// ErrPhotoNotFound indicates the referenced photo does not exist.
	ErrPhotoNotFound = errors.New("photo not found")
)
