package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	issuer := NewSessionIssuer([]byte("test-secret"), "authgate", time.Hour)

	token, expiresAt, err := issuer.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	userID, err := issuer.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestValidateExpired(t *testing.T) {
	issuer := NewSessionIssuer([]byte("test-secret"), "authgate", -time.Minute)
	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	require.Error(t, err)
}

func TestValidateTampered(t *testing.T) {
	issuer := NewSessionIssuer([]byte("test-secret"), "authgate", time.Hour)
	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = issuer.Validate(token + "x")
	require.Error(t, err)
	_, err = issuer.Validate("not.a.token")
	require.Error(t, err)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewSessionIssuer([]byte("test-secret"), "authgate", time.Hour)
	other := NewSessionIssuer([]byte("other-secret"), "authgate", time.Hour)

	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.Error(t, err)
}
