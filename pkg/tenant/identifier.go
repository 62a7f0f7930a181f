package tenant

import (
	"regexp"
	"strings"
)

// identifierPattern restricts identifiers to URL- and DNS-safe characters.
// Dots, slashes, and whitespace are rejected to prevent host or path injection.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,100}$`)

// reservedIdentifiers can never be claimed as tenant identifiers because they
// collide with infrastructure hostnames, well-known paths, or environments.
var reservedIdentifiers = map[string]struct{}{
	"api":         {},
	"www":         {},
	"admin":       {},
	"root":        {},
	"system":      {},
	"public":      {},
	"private":     {},
	"static":      {},
	"assets":      {},
	"cdn":         {},
	"mail":        {},
	"email":       {},
	"ftp":         {},
	"ssh":         {},
	"localhost":   {},
	"staging":     {},
	"prod":        {},
	"production":  {},
	"dev":         {},
	"development": {},
}

// IsValidIdentifier reports whether candidate is a usable tenant identifier.
// A valid identifier is 1-100 characters of [a-zA-Z0-9_-], contains no
// control characters, and is not a reserved word (case-insensitive).
func IsValidIdentifier(candidate string) bool {
	if candidate == "" {
		return false
	}

	// The transport layer usually strips these already; checked here anyway
	// so the rule holds for identifiers arriving from any source.
	if strings.ContainsAny(candidate, "\r\n\t\x00") {
		return false
	}

	if !identifierPattern.MatchString(candidate) {
		return false
	}

	if _, reserved := reservedIdentifiers[strings.ToLower(candidate)]; reserved {
		return false
	}

	return true
}
