package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
)

func TestGenerateSecureToken_Length(t *testing.T) {
	tests := []struct {
		bytes int
	}{
		{constants.ActionTokenBytes},
		{constants.RefreshTokenBytes},
	}

	for _, tt := range tests {
		token, err := GenerateSecureToken(tt.bytes)
		require.NoError(t, err)
		assert.Equal(t, base64.RawURLEncoding.EncodedLen(tt.bytes), len(token))
		assert.NotContains(t, token, "=")

		other, err := GenerateSecureToken(tt.bytes)
		require.NoError(t, err)
		assert.NotEqual(t, token, other)
	}
}

func TestGenerateTemporaryPassword_MeetsComplexity(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GenerateTemporaryPassword()
		require.NoError(t, err)
		require.Len(t, pw, constants.TemporaryPasswordSize)

		assert.True(t, strings.ContainsAny(pw, constants.PasswordLower), pw)
		assert.True(t, strings.ContainsAny(pw, constants.PasswordUpper), pw)
		assert.True(t, strings.ContainsAny(pw, constants.PasswordDigits), pw)
		assert.True(t, strings.ContainsAny(pw, constants.PasswordSpecial), pw)
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret@123")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret@123", hash)
	assert.True(t, CheckPassword(hash, "Secret@123"))
	assert.False(t, CheckPassword(hash, "secret@123"))
}
