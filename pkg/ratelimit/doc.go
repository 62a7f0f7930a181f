// Package ratelimit is a thin adapter over an external rate limiter.
//
// The Limiter interface hides the backend: RedisLimiter shares a fixed
// window across application instances, MemoryLimiter serves tests and
// single-instance setups. Keys are derived per request by a KeyFunc;
// KeyByIP and KeyByTenant cover the common cases.
package ratelimit
