package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	// ErrInvalidInput covers missing or empty required fields.
	ErrInvalidInput = errors.New("all fields are required")
	// ErrUserExists is returned on signup with an already registered email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password; the message must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when an email or session identity does
	// not map to a record.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken covers expired, consumed, and unknown verification
	// codes and reset tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnauthorized is returned when the session cookie is missing,
	// malformed, tampered with, or expired.
	ErrUnauthorized = errors.New("unauthorized")
)
