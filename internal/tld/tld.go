// Package tld implements the effective-top-level-domain extraction the
// resolution engine uses to reject syntactically unresolvable names
// before spending a query on them (spec.md §4.6 step 1).
package tld

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Effective returns the effective TLD of hostname (e.g. "com" for
// "www.example.com", "co.uk" for "example.co.uk") and true, or ("", false)
// if hostname has no recognizable public suffix — the case the engine
// treats as syntactically unresolvable.
func Effective(hostname string) (string, bool) {
	hostname = strings.TrimSuffix(hostname, ".")
	if hostname == "" {
		return "", false
	}

	suffix, icann := publicsuffix.PublicSuffix(strings.ToLower(hostname))
	if suffix == "" {
		return "", false
	}
	// publicsuffix.PublicSuffix returns a best-effort guess (the last
	// label) for names it doesn't recognize at all; icann is false and
	// there's no dot in that guess in the pathological single-label case.
	if !icann && !strings.Contains(suffix, ".") && suffix == hostname {
		return "", false
	}
	return suffix, true
}
