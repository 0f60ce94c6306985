// Package referral extracts affiliate codes from landing-page query strings.
package referral

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxLength is the longest accepted affiliate code
const MaxLength = 64

// codePattern restricts codes to bytes that survive a cookie unchanged
var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Query parameter names checked, in order, on each landing page.
var (
	// PricingKeys are read on the pricing page
	PricingKeys = []string{"ref", "via", "affiliate"}

	// AffiliateKeys are read on the affiliate landing page
	AffiliateKeys = []string{"ref", "via", "code"}
)

// FromQuery returns the first non-empty value among keys
func FromQuery(values url.Values, keys ...string) string {
	for _, k := range keys {
		if v := Normalize(values.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// Resolve picks the affiliate code for a visit. A valid code in the query
// string wins and should be persisted by the caller; otherwise the stored
// code is used. Malformed codes from either source are dropped.
func Resolve(values url.Values, keys []string, stored string) (code string, fromQuery bool) {
	if code := FromQuery(values, keys...); Valid(code) {
		return code, true
	}
	if code := Normalize(stored); Valid(code) {
		return code, false
	}
	return "", false
}

// Valid reports whether code is a well-formed affiliate code: 1 to MaxLength
// letters, digits, underscores or hyphens.
func Valid(code string) bool {
	return len(code) <= MaxLength && codePattern.MatchString(code)
}

// Normalize trims whitespace. An empty result means no code.
func Normalize(code string) string {
	return strings.TrimSpace(code)
}
