// Package common defines shared sentinel errors and small helpers used
// across the taskboard service layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. Services wrap this sentinel with a field-level
	// message, e.g. fmt.Errorf("%w: password too short", ErrorValidation).
	ErrorValidation = errors.New("validation error")

	// ErrorPermissionDenied marks a refused destructive operation, such as
	// deleting a contact that is backed by a registered account.
	ErrorPermissionDenied = errors.New("permission denied")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
