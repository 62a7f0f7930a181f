package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidSignature is returned when a signed value fails verification.
var ErrInvalidSignature = errors.New("cookie: invalid signature")

// SignValue appends an HMAC-SHA256 signature to value so tampering is
// detectable on the way back in. The result is safe for cookie transport.
func SignValue(value string, secret []byte) string {
	return encode(value) + "." + signature(value, secret)
}

// VerifyValue checks a value produced by SignValue and returns the original
// payload. Verification is constant time and fails closed on any malformed
// input.
func VerifyValue(signed string, secret []byte) (string, error) {
	payload, mac, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidSignature
	}

	value := string(raw)
	if !hmac.Equal([]byte(mac), []byte(signature(value, secret))) {
		return "", ErrInvalidSignature
	}
	return value, nil
}

func encode(value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value))
}

func signature(value string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
