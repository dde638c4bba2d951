package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublicStripsCredentials(t *testing.T) {
	now := time.Now()
	u := &User{
		ID:           "u1",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$secret",
		Name:         "A",
		IsVerified:   true,
		Verification: &TokenGrant{Token: "123456", ExpiresAt: now.Add(time.Hour)},
		Reset:        &TokenGrant{Token: "deadbeef", ExpiresAt: now.Add(time.Hour)},
		LastLoginAt:  &now,
		CreatedAt:    now,
	}
	pub := u.Public()
	require.Equal(t, "u1", pub.ID)
	require.Equal(t, "a@x.com", pub.Email)
	require.Equal(t, "A", pub.Name)
	require.True(t, pub.IsVerified)
	require.NotNil(t, pub.LastLoginAt)
}

func TestTokenGrantActive(t *testing.T) {
	now := time.Now()
	var g *TokenGrant
	require.False(t, g.Active(now), "nil grant is never active")

	g = &TokenGrant{Token: "123456", ExpiresAt: now.Add(time.Minute)}
	require.True(t, g.Active(now))
	require.False(t, g.Active(now.Add(2*time.Minute)), "expired grant is not active")
	require.False(t, g.Active(g.ExpiresAt), "expiry instant is not active")
}
