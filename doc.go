// Package saasbase is a multi-tenant SaaS application boilerplate: tenant
// resolution, double-submit CSRF protection, feature-flag evaluation,
// rate limiting, and logging plumbing composed over chi.
//
// Each concern lives in its own pkg subpackage and is wired together by
// Stack and Router. Configuration is environment-derived, loaded once,
// and injected; request handling is stateless per request.
package saasbase
