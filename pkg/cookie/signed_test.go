package cookie_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/saasbase/pkg/cookie"
)

func TestSignedValue(t *testing.T) {
	t.Parallel()

	secret := []byte("0123456789abcdef0123456789abcdef")

	t.Run("round-trip", func(t *testing.T) {
		t.Parallel()

		signed := cookie.SignValue("user-42", secret)
		value, err := cookie.VerifyValue(signed, secret)
		require.NoError(t, err)
		assert.Equal(t, "user-42", value)
	})

	t.Run("tampered payload rejected", func(t *testing.T) {
		t.Parallel()

		signed := cookie.SignValue("user-42", secret)
		tampered := "x" + signed[1:]

		_, err := cookie.VerifyValue(tampered, secret)
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		t.Parallel()

		signed := cookie.SignValue("user-42", secret)

		_, err := cookie.VerifyValue(signed, []byte("another-secret"))
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("missing separator rejected", func(t *testing.T) {
		t.Parallel()

		signed := cookie.SignValue("user-42", secret)
		_, err := cookie.VerifyValue(strings.ReplaceAll(signed, ".", ""), secret)
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("payload may contain the separator", func(t *testing.T) {
		t.Parallel()

		signed := cookie.SignValue("a.b.c", secret)
		value, err := cookie.VerifyValue(signed, secret)
		require.NoError(t, err)
		assert.Equal(t, "a.b.c", value)
	})
}
