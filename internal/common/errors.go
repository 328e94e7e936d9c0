// Package common defines shared constants and sentinel errors used across
// the qrollcall service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Transport security errors.
	ErrConfiguration = errors.New("secret key required")
	ErrDecryption    = errors.New("decryption failed")

	// Attendance domain rejections. Each maps to its own client-facing
	// message and is never folded into a generic failure.
	ErrTokenInvalid   = errors.New("invalid qr code")
	ErrSessionInvalid = errors.New("invalid schedule")
	ErrAlreadyMarked  = errors.New("attendance already marked")

	// Service-level errors.
	ErrInternal         = errors.New("internal error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken        = errors.New("invalid token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
