package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateVerificationCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9', "code must be numeric, got %q", code)
		}
		require.True(t, code[0] != '0', "code has no leading zero, got %q", code)
		seen[code] = true
	}
	require.Greater(t, len(seen), 1, "codes should vary")
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	require.Len(t, a, resetTokenBytes*2)
	_, err = hex.DecodeString(a)
	require.NoError(t, err, "token must be hex")
	require.NotEqual(t, a, b)
}
