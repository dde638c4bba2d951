package domain

import "time"

// TokenGrant is an outstanding single-use token with its expiry.
// A nil *TokenGrant means no grant is outstanding.
type TokenGrant struct {
	Token     string
	ExpiresAt time.Time
}

// Active reports whether the grant exists and has not expired at now.
func (g *TokenGrant) Active(now time.Time) bool {
	return g != nil && now.Before(g.ExpiresAt)
}

// User is a registered account. ID is assigned by the store on creation.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	IsVerified   bool
	Verification *TokenGrant
	Reset        *TokenGrant
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward-facing projection. The password hash never
// appears here.
type PublicUser struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsVerified  bool       `json:"isVerified"`
	LastLoginAt *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Public strips credentials and token grants from the record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsVerified:  u.IsVerified,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
