package csrf_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/saasbase/pkg/csrf"
)

func TestMintSecret(t *testing.T) {
	t.Parallel()

	t.Run("respects requested length", func(t *testing.T) {
		t.Parallel()

		secret, err := csrf.MintSecret(32)
		require.NoError(t, err)
		assert.Len(t, secret, 32)
	})

	t.Run("non-positive length falls back to default", func(t *testing.T) {
		t.Parallel()

		secret, err := csrf.MintSecret(0)
		require.NoError(t, err)
		assert.Len(t, secret, csrf.DefaultSecretLength)
	})

	t.Run("secrets are unique", func(t *testing.T) {
		t.Parallel()

		a, err := csrf.MintSecret(32)
		require.NoError(t, err)
		b, err := csrf.MintSecret(32)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("derived token verifies against its secret", func(t *testing.T) {
		t.Parallel()

		secret, err := csrf.MintSecret(32)
		require.NoError(t, err)

		token, err := csrf.DeriveToken(secret, 16)
		require.NoError(t, err)
		assert.True(t, csrf.VerifyToken(token, secret))
	})

	t.Run("token does not verify against another secret", func(t *testing.T) {
		t.Parallel()

		secretA, err := csrf.MintSecret(32)
		require.NoError(t, err)
		secretB, err := csrf.MintSecret(32)
		require.NoError(t, err)

		token, err := csrf.DeriveToken(secretA, 16)
		require.NoError(t, err)
		assert.False(t, csrf.VerifyToken(token, secretB))
	})

	t.Run("differently salted tokens both verify", func(t *testing.T) {
		t.Parallel()

		secret, err := csrf.MintSecret(32)
		require.NoError(t, err)

		first, err := csrf.DeriveToken(secret, 16)
		require.NoError(t, err)
		second, err := csrf.DeriveToken(secret, 16)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, csrf.VerifyToken(first, secret))
		assert.True(t, csrf.VerifyToken(second, secret))
	})

	t.Run("token is url-safe", func(t *testing.T) {
		t.Parallel()

		secret, err := csrf.MintSecret(32)
		require.NoError(t, err)
		token, err := csrf.DeriveToken(secret, 16)
		require.NoError(t, err)

		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")
	})
}

func TestVerifyTokenFailsClosed(t *testing.T) {
	t.Parallel()

	secret, err := csrf.MintSecret(32)
	require.NoError(t, err)

	token, err := csrf.DeriveToken(secret, 16)
	require.NoError(t, err)

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()

		assert.False(t, csrf.VerifyToken("", secret))
		assert.False(t, csrf.VerifyToken(token, nil))
	})

	t.Run("not base64url", func(t *testing.T) {
		t.Parallel()

		assert.False(t, csrf.VerifyToken("not~base64!", secret))
	})

	t.Run("truncated token", func(t *testing.T) {
		t.Parallel()

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)

		short := base64.RawURLEncoding.EncodeToString(raw[:16])
		assert.False(t, csrf.VerifyToken(short, secret))
	})

	t.Run("tampered binding", func(t *testing.T) {
		t.Parallel()

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)

		raw[len(raw)-1] ^= 0xff
		assert.False(t, csrf.VerifyToken(base64.RawURLEncoding.EncodeToString(raw), secret))
	})

	t.Run("tampered salt", func(t *testing.T) {
		t.Parallel()

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)

		raw[0] ^= 0xff
		assert.False(t, csrf.VerifyToken(base64.RawURLEncoding.EncodeToString(raw), secret))
	})

	t.Run("padded encoding is rejected", func(t *testing.T) {
		t.Parallel()

		padded := token + strings.Repeat("=", 2)
		assert.False(t, csrf.VerifyToken(padded, secret))
	})
}
