// Package feature provides feature-flag evaluation over static
// configuration with tenant-aware targeting rules.
//
// Flags are evaluated against the tenant resolved for the current request:
// deny lists win over allow lists, which win over percentage rollouts
// (stable per tenant), which fall back to the flag's enabled bit. Backends
// implement the Provider capability interface; the in-memory and YAML file
// providers ship here, remote backends are intentionally out of scope.
package feature
