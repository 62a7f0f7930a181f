// Package csrf implements double-submit CSRF protection without server-side
// session storage.
//
// The server holds a random secret in an HTTP-only, SameSite=Strict cookie
// alongside an issued-at timestamp. Clients receive a derived token via a
// response header (or the dedicated issuance endpoint) and echo it back in
// a request header on mutating calls. A token is valid if and only if it
// verifies against the secret currently in the request's cookie jar: the
// token embeds a random salt plus an HKDF-SHA256 binding keyed on the
// secret, so verification re-derives the binding and compares in constant
// time. Tokens are never compared to each other.
//
// # Rotation
//
// Secrets rotate in two cases: on safe methods when the secret is missing
// or older than the configured interval, and unconditionally after every
// successful unsafe-method verification. The second rule turns each token
// into an effectively single-use credential; two racing mutations with the
// same token resolve with at most one winner, which is the intended replay
// bound, not a defect.
//
// # Usage
//
//	engine := csrf.NewEngine(csrf.Config{AppURL: "https://app.example.com"})
//
//	router.Use(csrf.Middleware(engine))
//	router.Get("/api/security/csrf", csrf.TokenHandler(engine))
//
// The protocol engine itself (Engine.Apply) is a pure function over a
// request Snapshot, returning a Verdict with the cookie diff to apply.
// The middleware is the only place that touches net/http.
package csrf
