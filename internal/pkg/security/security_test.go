package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	InitJWT("unit-test-secret", 1)

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateToken("65f0c0ffee0000000000abcd", "admin")
		require.NoError(t, err)

		claims, err := ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "65f0c0ffee0000000000abcd", claims.UserID)
		assert.Equal(t, "admin", claims.Role)

		ttl := RemainingTTL(claims)
		assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := GenerateToken("65f0c0ffee0000000000abcd", "user")
		require.NoError(t, err)

		_, err = ValidateToken(token + "x")
		assert.Error(t, err)
	})

	t.Run("signature", func(t *testing.T) {
		sig, err := ExtractSignature("a.b.c")
		require.NoError(t, err)
		assert.Equal(t, "c", sig)

		_, err = ExtractSignature("a.b")
		assert.Error(t, err)
	})

	t.Run("nil claims ttl", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), RemainingTTL(nil))
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NoError(t, CheckPasswordHash("s3cret-pass", hash))
	assert.ErrorIs(t, CheckPasswordHash("wrong", hash), ErrInvalidCredentials)

	_, err = HashPassword("")
	assert.Error(t, err)
}
