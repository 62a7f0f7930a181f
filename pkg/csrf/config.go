package csrf

import "time"

// Default configuration values applied by Config.withDefaults.
const (
	DefaultHeaderName   = "X-CSRF-Token"
	DefaultSecretLength = 32
	DefaultSaltLength   = 16
	DefaultRotateAfter  = 24 * time.Hour
	DefaultIssuancePath = "/api/security/csrf"

	secretCookieBase   = "csrf-secret"
	issuedAtCookieBase = "csrf-iat"
)

// Config holds CSRF protection configuration. It is resolved once from the
// environment and injected into NewEngine; the engine never reads ambient
// state after construction.
type Config struct {
	// HeaderName carries issued tokens on responses.
	HeaderName string `env:"CSRF_HEADER" envDefault:"X-CSRF-Token"`
	// AcceptedHeaders are checked in order for the client-echoed token on
	// unsafe methods; the first non-empty value wins.
	AcceptedHeaders []string `env:"CSRF_ACCEPTED_HEADERS" envDefault:"X-CSRF-Token,X-XSRF-Token"`
	// CookiePrefix is prepended to both cookie names.
	CookiePrefix string `env:"CSRF_COOKIE_PREFIX"`
	// SecretLength is the secret size in bytes.
	SecretLength int `env:"CSRF_SECRET_LENGTH" envDefault:"32"`
	// SaltLength is the per-token salt size in bytes.
	SaltLength int `env:"CSRF_SALT_LENGTH" envDefault:"16"`
	// RotateAfter bounds the lifetime of a secret issued on safe methods.
	RotateAfter time.Duration `env:"CSRF_ROTATE_AFTER" envDefault:"24h"`
	// SecureCookies adds the Secure attribute to both cookies.
	SecureCookies bool `env:"CSRF_SECURE_COOKIES" envDefault:"false"`
	// ProtectedPaths are path prefixes subject to the protocol.
	ProtectedPaths []string `env:"CSRF_PROTECTED_PATHS" envDefault:"/api"`
	// IssuancePath is the dedicated token endpoint, exempt from enforcement.
	IssuancePath string `env:"CSRF_ISSUANCE_PATH" envDefault:"/api/security/csrf"`
	// AppURL, when set, fixes the expected origin for same-origin checks.
	// When empty the origin is derived from forwarded headers per request.
	AppURL string `env:"APP_URL"`
}

// SecretCookieName returns the name of the HTTP-only secret cookie.
func (c Config) SecretCookieName() string {
	return c.CookiePrefix + secretCookieBase
}

// IssuedAtCookieName returns the name of the secret timestamp cookie.
func (c Config) IssuedAtCookieName() string {
	return c.CookiePrefix + issuedAtCookieBase
}

func (c Config) withDefaults() Config {
	if c.HeaderName == "" {
		c.HeaderName = DefaultHeaderName
	}
	if len(c.AcceptedHeaders) == 0 {
		c.AcceptedHeaders = []string{DefaultHeaderName, "X-XSRF-Token"}
	}
	if c.SecretLength <= 0 {
		c.SecretLength = DefaultSecretLength
	}
	if c.SaltLength <= 0 {
		c.SaltLength = DefaultSaltLength
	}
	if c.RotateAfter <= 0 {
		c.RotateAfter = DefaultRotateAfter
	}
	if len(c.ProtectedPaths) == 0 {
		c.ProtectedPaths = []string{"/api"}
	}
	if c.IssuancePath == "" {
		c.IssuancePath = DefaultIssuancePath
	}
	return c
}
