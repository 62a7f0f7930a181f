// Package environment provides application environment detection and
// request-context propagation.
//
// The environment drives ambient defaults elsewhere in the repository:
// logger format and level, and the Secure attribute on CSRF cookies.
package environment
