package ports

import "time"

// PasswordHasher hashes and verifies passwords (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// SessionIssuer signs and validates session tokens carried in the cookie.
type SessionIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	// Validate returns the user ID bound to a well-formed, untampered,
	// unexpired token.
	Validate(token string) (userID string, err error)
}
