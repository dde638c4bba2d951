package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MAILTRAP_TOKEN", "api-token")
	t.Setenv("CLIENT_URL", "https://app.example.com/")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "authgate", cfg.Mongo.Database)
	require.Equal(t, int64(604800), cfg.Session.Expiry)
	require.Equal(t, "https://app.example.com", cfg.Client.URL, "trailing slash is trimmed")
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_EXPIRY", "3600")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Server.Port)
	require.Equal(t, int64(3600), cfg.Session.Expiry)
}
