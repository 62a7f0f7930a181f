package feature

import "errors"

var (
	// ErrFlagNotFound is returned when a flag does not exist.
	ErrFlagNotFound = errors.New("feature flag not found")

	// ErrDuplicateFlag is returned when registering a flag name twice.
	ErrDuplicateFlag = errors.New("feature flag already registered")

	// ErrInvalidSource is returned when a backing source cannot be parsed.
	ErrInvalidSource = errors.New("invalid feature flag source")
)
