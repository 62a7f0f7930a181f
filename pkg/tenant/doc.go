// Package tenant provides multi-tenancy support through strict tenant
// identification and request-scoped context propagation.
//
// A Resolver extracts the tenant identifier from incoming requests by
// trying strategies in priority order: the tenant header, the request
// subdomain, a /tenant/{id} path prefix, and finally a configured default.
// Every candidate passes through IsValidIdentifier, which enforces a safe
// character set, a length limit, and a reserved-word list shared by all
// strategies, so an identifier that would collide with infrastructure
// hostnames can never be claimed through any channel.
//
// # Usage
//
//	resolver := tenant.NewResolver(tenant.Config{
//		HeaderName:         "X-Tenant-ID",
//		DefaultTenantID:    "default",
//		MultiTenantEnabled: true,
//	})
//
//	router.Use(tenant.Middleware(resolver))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		res, _ := tenant.ResolutionFromContext(r.Context())
//		_ = res.TenantID
//	}
//
// The middleware stamps X-Tenant-ID, X-Tenant-Strategy, and (for subdomain
// resolution) X-Tenant-Subdomain / X-Tenant-Domain onto the response so
// downstream consumers can read the outcome without re-deriving it. Static
// assets, /api/, and framework-internal paths are skipped.
//
// Record loading is separate from identification: LoadTenant fetches the
// full tenant record through a Provider and stores it in the context, and
// RequireTenant guards routes that cannot run without one. StaticProvider
// is the in-memory Provider used by the boilerplate; persistence-backed
// providers are out of scope here.
package tenant
