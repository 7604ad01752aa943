// Package service provides business logic services for the Wilayah app.
package service

import "errors"

// Common service errors.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPassword    = errors.New("invalid password: must not be empty")
	ErrInvalidUsername    = errors.New("invalid username: must be 3-255 characters")
	ErrInvalidEmail       = errors.New("invalid email format")

	// Province errors
	ErrProvinceNotFound = errors.New("province not found")
	ErrInvalidProvince  = errors.New("invalid province: nama, diresmikan and pulau are required")

	// District errors
	ErrDistrictNotFound = errors.New("district not found")
	ErrInvalidDistrict  = errors.New("invalid district: nama, diresmikan and provinsi are required")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
