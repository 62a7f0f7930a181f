package ratelimit

import (
	"net/http"

	"github.com/appforge/saasbase/pkg/clientip"
	"github.com/appforge/saasbase/pkg/tenant"
)

// KeyByIP keys limits on the client IP address.
func KeyByIP(r *http.Request) string {
	return "ip:" + clientip.GetIP(r)
}

// KeyByTenant keys limits on the resolved tenant, falling back to the
// client IP when no tenant is in context.
func KeyByTenant(r *http.Request) string {
	if id, ok := tenant.IDFromContext(r.Context()); ok && id != "" {
		return "tenant:" + id
	}
	return KeyByIP(r)
}
