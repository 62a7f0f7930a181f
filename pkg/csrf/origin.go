package csrf

import (
	"net/http"
	"net/url"
)

// SameOrigin reports whether the request's claimed origin exactly matches
// the application origin. Scheme, host, and port must all be equal; there
// is no substring or suffix matching. Malformed URLs in any header are
// treated as non-matching, never as errors.
func SameOrigin(r *http.Request, appURL string) bool {
	candidate := claimedOrigin(r)
	if candidate == "" {
		return false
	}

	expected := expectedOrigin(r, appURL)
	if expected == "" {
		return false
	}

	return candidate == expected
}

// claimedOrigin extracts the origin the client claims to come from: the
// Origin header when present, otherwise the scheme://host of a parseable
// Referer.
func claimedOrigin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}

	referer := r.Header.Get("Referer")
	if referer == "" {
		return ""
	}

	u, err := url.Parse(referer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// expectedOrigin derives the origin the application answers on. A
// configured application URL wins; otherwise the origin is reconstructed
// from forwarded headers, defaulting the scheme to https as any proxied
// production deployment terminates TLS upstream.
func expectedOrigin(r *http.Request, appURL string) string {
	if appURL != "" {
		if u, err := url.Parse(appURL); err == nil && u.Scheme != "" && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}

	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "https"
	}

	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	if host == "" {
		return ""
	}

	return proto + "://" + host
}
