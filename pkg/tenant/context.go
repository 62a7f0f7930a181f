package tenant

import (
	"context"
	"log/slog"
)

// Separate context keys keep the per-request Resolution and the loaded
// tenant record independent: resolution always happens, record loading is
// optional.
type (
	resolutionKey struct{}
	tenantKey     struct{}
)

// WithResolution adds a resolution result to the context.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, resolutionKey{}, res)
}

// ResolutionFromContext retrieves the resolution result from the context.
func ResolutionFromContext(ctx context.Context) (Resolution, bool) {
	res, ok := ctx.Value(resolutionKey{}).(Resolution)
	return res, ok
}

// WithTenant adds a loaded tenant record to the context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// FromContext retrieves the tenant record from the context.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(tenantKey{}).(*Tenant)
	return t, ok
}

// MustFromContext retrieves the tenant record from the context.
// Panics if no tenant is found. Use this only in handlers that
// absolutely require a tenant to function.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		panic("tenant: no tenant in context")
	}
	return t
}

// IDFromContext returns the resolved tenant identifier, falling back to the
// identifier of a loaded tenant record when no resolution is present.
func IDFromContext(ctx context.Context) (string, bool) {
	if res, ok := ResolutionFromContext(ctx); ok {
		return res.TenantID, true
	}
	if t, ok := FromContext(ctx); ok && t != nil {
		return t.Identifier, true
	}
	return "", false
}

// LoggerExtractor returns a ContextExtractor for the logger that extracts
// the tenant identifier from context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
