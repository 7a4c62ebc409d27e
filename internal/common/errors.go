// Package common defines shared constants and sentinel errors used across
// the coursehub server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Caller-fixable input errors. Wrapped with a field message.
	ErrValidation  = errors.New("validation error")
	ErrRoleInvalid = errors.New("invalid role")

	// Credential lifecycle errors.
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailNotVerified      = errors.New("email not verified")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// Authorization gate errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Bearer token verification errors.
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")

	// Notification errors.
	ErrDeliveryFailed = errors.New("delivery failed")
)
