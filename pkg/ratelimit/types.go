package ratelimit

import (
	"context"
	"net/http"
	"time"
)

// Result describes the outcome of a rate-limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long the client should wait before retrying.
func (r Result) RetryAfter() time.Duration {
	d := time.Until(r.ResetAt)
	if d < 0 {
		return 0
	}
	return d
}

// Limiter checks whether a request identified by key may proceed.
// Implementations are thin adapters over an external limiter; this
// repository ships a Redis-backed fixed window and an in-memory variant
// for tests.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// KeyFunc derives the rate-limit key from a request. Returning the empty
// string skips limiting for that request.
type KeyFunc func(r *http.Request) string

// Config describes a fixed-window limit.
type Config struct {
	Limit  int           `env:"RATELIMIT_LIMIT" envDefault:"100"`
	Window time.Duration `env:"RATELIMIT_WINDOW" envDefault:"1m"`
}
