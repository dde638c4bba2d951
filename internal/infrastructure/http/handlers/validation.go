package handlers

import "strings"

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
	MaxNameLength     = 100
)

// SanitizeEmail trims and lowercases email; returns empty if over max length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizePassword trims password; returns empty if over max length.
func SanitizePassword(password string) string {
	s := strings.TrimSpace(password)
	if len(s) > MaxPasswordLength {
		return ""
	}
	return s
}

// SanitizeName trims the display name; returns empty if over max length.
func SanitizeName(name string) string {
	s := strings.TrimSpace(name)
	if len(s) > MaxNameLength {
		return ""
	}
	return s
}
