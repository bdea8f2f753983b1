package domain

import "errors"

// Validation.
var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Conflict.
var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrRoleNotFound = errors.New("role not found")
)

// Authentication and authorization. Callers never learn whether an account
// exists from a failed login: unknown email and wrong password are both
// ErrInvalidCredentials.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
)

// Not found.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailNotFound     = errors.New("email not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrInvalidResetToken = errors.New("invalid or expired token")
)
