package csrf

import "errors"

var (
	// ErrCrossOrigin is returned when the request's claimed origin does not
	// match the application origin.
	ErrCrossOrigin = errors.New("cross-origin request rejected")

	// ErrInvalidToken covers every token-path failure: missing header,
	// missing secret, and failed verification. A single error avoids oracle
	// behavior that would tell an attacker which check failed.
	ErrInvalidToken = errors.New("invalid or missing csrf token")

	// ErrSecretGeneration is returned when the secure random source fails.
	ErrSecretGeneration = errors.New("csrf secret generation failed")
)
