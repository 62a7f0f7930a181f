// Package config loads environment-derived configuration into plain
// structs using `env` field tags.
//
// Every config struct in this repository is resolved exactly once per
// process and then injected into the component that needs it; no business
// logic performs ambient environment lookups. The per-type cache in Load
// enforces the load-once rule even when several components share a config
// type.
package config
