package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Response headers stamped by the middleware. They are the only channel by
// which tenant identity crosses from request-time resolution into downstream
// consumers; identity is re-derived on every request, there is no shared
// registry.
const (
	HeaderTenantID        = "X-Tenant-ID"
	HeaderTenantStrategy  = "X-Tenant-Strategy"
	HeaderTenantSubdomain = "X-Tenant-Subdomain"
	HeaderTenantDomain    = "X-Tenant-Domain"
)

// defaultSkipPrefixes covers framework-internal and API routes that never
// need tenant stamping.
var defaultSkipPrefixes = []string{"/api/", "/_next/", "/favicon.ico"}

// Middleware resolves the tenant for in-scope requests, stamps the result
// onto response headers, and stores it in the request context.
func Middleware(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		skipPrefixes: defaultSkipPrefixes,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipPath(r.URL.Path, cfg.skipPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			res := resolver.Resolve(r)

			w.Header().Set(HeaderTenantID, res.TenantID)
			w.Header().Set(HeaderTenantStrategy, string(res.Strategy))
			if res.Subdomain != "" {
				w.Header().Set(HeaderTenantSubdomain, res.Subdomain)
			}
			if res.Domain != "" {
				w.Header().Set(HeaderTenantDomain, res.Domain)
			}

			if cfg.logger != nil {
				cfg.logger.DebugContext(r.Context(), "tenant resolved",
					slog.String("tenant_id", res.TenantID),
					slog.String("strategy", string(res.Strategy)),
				)
			}

			ctx := WithResolution(r.Context(), res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// skipPath reports whether the path is out of scope for tenant resolution.
// Any path containing a dot is treated as a static asset with a file
// extension.
func skipPath(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return strings.Contains(path, ".")
}

// LoadTenant loads the full tenant record for a previously resolved request
// and stores it in the context. Requests resolving to an unknown or
// inactive tenant are rejected.
func LoadTenant(provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler:  defaultErrorHandler,
		requireActive: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, ok := ResolutionFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			t, err := provider.GetByIdentifier(r.Context(), res.TenantID)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.requireActive && !t.Active {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant ensures a tenant record is present in the context. Use it
// to protect routes that cannot operate without one.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t, ok := FromContext(r.Context())
			if !ok || t == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	case errors.Is(err, ErrNoTenantInContext):
		http.Error(w, "Tenant required", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
