package tenant

import (
	"log/slog"
	"net/http"
)

// ErrorHandler handles errors that occur during tenant record loading.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	skipPrefixes  []string
	errorHandler  ErrorHandler
	requireActive bool
	logger        *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithSkipPaths replaces the default set of path prefixes that bypass
// tenant resolution.
func WithSkipPaths(prefixes []string) Option {
	return func(c *config) {
		c.skipPrefixes = prefixes
	}
}

// WithErrorHandler sets a custom error handler for LoadTenant.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithRequireActive controls whether LoadTenant rejects inactive tenants.
func WithRequireActive(require bool) Option {
	return func(c *config) {
		c.requireActive = require
	}
}

// WithLogger sets a logger for resolution debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
