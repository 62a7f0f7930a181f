// Package clientip extracts the real client IP from proxied HTTP
// requests. Used as the default rate-limit key and for request logging.
package clientip
