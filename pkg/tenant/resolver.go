package tenant

import (
	"net/http"
	"regexp"
	"strings"
)

// Strategy identifies the mechanism that produced a tenant identifier.
type Strategy string

const (
	// StrategyHeader means the identifier came from the tenant header
	// (also used for the configured default when nothing else matched).
	StrategyHeader Strategy = "header"
	// StrategySubdomain means the identifier came from the request host.
	StrategySubdomain Strategy = "subdomain"
	// StrategyPath means the identifier came from a /tenant/{id} path prefix.
	StrategyPath Strategy = "path"
)

// pathPattern captures the identifier from /tenant/{id} style paths.
var pathPattern = regexp.MustCompile(`^/tenant/([^/]+)`)

// Resolution is the per-request outcome of tenant identification.
// It is ephemeral: re-derived on every request, never persisted.
type Resolution struct {
	TenantID string
	Strategy Strategy
	// Subdomain and Domain are populated only when Strategy is
	// StrategySubdomain. Domain keeps the original host including port.
	Subdomain string
	Domain    string
}

// Resolver extracts a tenant identifier from HTTP requests by trying
// strategies in strict priority order: header, subdomain, path, default.
// Every candidate is filtered through IsValidIdentifier; an invalid
// candidate makes the strategy fall through rather than fail the request.
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver from an immutable configuration.
func NewResolver(cfg Config) *Resolver {
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultHeaderName
	}
	if cfg.DefaultTenantID == "" {
		cfg.DefaultTenantID = DefaultTenantID
	}
	return &Resolver{cfg: cfg}
}

// Resolve produces a Resolution for the request. It never fails: malformed
// input degrades to the configured default tenant. When multi-tenancy is
// disabled the default is returned unconditionally so no request data can
// influence tenant selection.
func (r *Resolver) Resolve(req *http.Request) Resolution {
	if !r.cfg.MultiTenantEnabled {
		return r.fallback()
	}

	if res, ok := r.resolveHeader(req); ok {
		return res
	}
	if res, ok := r.resolveSubdomain(req); ok {
		return res
	}
	if res, ok := r.resolvePath(req); ok {
		return res
	}

	return r.fallback()
}

func (r *Resolver) resolveHeader(req *http.Request) (Resolution, bool) {
	candidate := strings.TrimSpace(req.Header.Get(r.cfg.HeaderName))
	if !IsValidIdentifier(candidate) {
		return Resolution{}, false
	}
	return Resolution{TenantID: candidate, Strategy: StrategyHeader}, true
}

func (r *Resolver) resolveSubdomain(req *http.Request) (Resolution, bool) {
	host := req.Host
	if host == "" {
		return Resolution{}, false
	}

	hostname := host
	if idx := strings.LastIndex(hostname, ":"); idx != -1 {
		hostname = hostname[:idx]
	}

	// A subdomain requires at least three labels (sub.domain.tld), so bare
	// hosts like "localhost" or "example.com" never match this strategy.
	labels := strings.Split(hostname, ".")
	if len(labels) < 3 {
		return Resolution{}, false
	}

	candidate := labels[0]
	if candidate == "www" || !IsValidIdentifier(candidate) {
		return Resolution{}, false
	}

	return Resolution{
		TenantID:  candidate,
		Strategy:  StrategySubdomain,
		Subdomain: candidate,
		Domain:    host,
	}, true
}

func (r *Resolver) resolvePath(req *http.Request) (Resolution, bool) {
	if req.URL == nil {
		return Resolution{}, false
	}

	match := pathPattern.FindStringSubmatch(req.URL.Path)
	if match == nil || !IsValidIdentifier(match[1]) {
		return Resolution{}, false
	}

	return Resolution{TenantID: match[1], Strategy: StrategyPath}, true
}

func (r *Resolver) fallback() Resolution {
	return Resolution{TenantID: r.cfg.DefaultTenantID, Strategy: StrategyHeader}
}
