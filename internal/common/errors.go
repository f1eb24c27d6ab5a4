// Package common defines shared constants and sentinel errors used across
// AuthKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Account creation validation errors.
	ErrMissingUsername = errors.New("accounts must have a username")
	ErrMissingEmail    = errors.New("accounts must have an email address")
	ErrMissingPassword = errors.New("superusers must have a password")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")

	// Uniqueness violations. Raised by the losing side of a creation race
	// as well as by plain duplicate submissions.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")

	// Token errors.
	ErrSigningUnavailable = errors.New("token signing secret is not configured")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)
