package security

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt cost factor applied to every new hash.
const HashCost = 10

// BcryptHasher implements ports.PasswordHasher using bcrypt. The salt is
// generated per hash and embedded in the encoded output.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: HashCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares in constant time via bcrypt's own comparison.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
