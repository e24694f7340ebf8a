// Package detect classifies inbound messages for scam intent using a
// fixed keyword vocabulary. Deliberately a single-pass substring
// heuristic: no stemming, no negation handling, no context window.
package detect

import "strings"

// Keywords is the fraud-indicator vocabulary. The intelligence
// extractor reuses the same list, so detection and keyword harvesting
// never drift apart.
var Keywords = []string{
	"bank",
	"verify",
	"block",
	"suspend",
	"upi",
	"urgent",
	"pan card",
	"kyc",
	"expired",
}

// Scam reports whether the text contains any fraud indicator,
// case-insensitively. It never fails; no match is the only negative
// signal.
func Scam(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
