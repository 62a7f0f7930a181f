package csrf

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/hkdf"
)

// bindingLength is the size in bytes of the keyed binding appended to the
// salt inside a token.
const bindingLength = 32

// tokenInfo domain-separates the HKDF expansion from any other use of the
// same secret.
var tokenInfo = []byte("csrf-token-binding")

// MintSecret returns length cryptographically random bytes. Non-positive
// lengths fall back to DefaultSecretLength.
func MintSecret(length int) ([]byte, error) {
	if length <= 0 {
		length = DefaultSecretLength
	}

	secret := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, ErrSecretGeneration
	}
	return secret, nil
}

// DeriveToken produces a URL-safe token bound to secret: a fresh random
// salt followed by an HKDF-SHA256 binding keyed on the secret and salted
// per token. The token is opaque to the client and carries everything
// needed to re-verify it against the secret.
func DeriveToken(secret []byte, saltLength int) (string, error) {
	if saltLength <= 0 {
		saltLength = DefaultSaltLength
	}

	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", ErrSecretGeneration
	}

	mac, err := binding(secret, salt)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(append(salt, mac...)), nil
}

// VerifyToken recomputes the binding from the token's embedded salt and
// compares in constant time. Malformed, truncated, or undecodable tokens
// fail closed; this function never panics and never reports why a token
// was rejected.
func VerifyToken(token string, secret []byte) bool {
	if token == "" || len(secret) == 0 {
		return false
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return false
	}
	if len(raw) <= bindingLength {
		return false
	}

	salt := raw[:len(raw)-bindingLength]
	expected, err := binding(secret, salt)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(raw[len(raw)-bindingLength:], expected) == 1
}

func binding(secret, salt []byte) ([]byte, error) {
	out := make([]byte, bindingLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, tokenInfo), out); err != nil {
		return nil, ErrSecretGeneration
	}
	return out, nil
}
