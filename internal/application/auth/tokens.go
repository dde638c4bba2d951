package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// Token lifetimes.
const (
	VerificationExpiry = 24 * time.Hour
	ResetExpiry        = time.Hour
)

// resetTokenBytes gives 160 bits of entropy, hex-encoded to 40 chars.
const resetTokenBytes = 20

// GenerateVerificationCode returns a 6-digit numeric code suitable for
// manual entry from the verification email.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateResetToken returns a URL-safe random token for reset links.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
