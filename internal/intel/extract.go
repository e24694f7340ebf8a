// Package intel mines structured artifacts from a conversation
// history. Extraction is a best-effort heuristic, not a validator:
// malformed or partial captures are acceptable outputs, never errors.
package intel

import (
	"regexp"
	"strings"

	"github.com/shindesiddhant-415/Honeypot/internal/detect"
	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

// digitRunRegex matches phone- or account-like digit runs, allowing a
// leading + and internal separators.
var digitRunRegex = regexp.MustCompile(`\+?\d[\d\- ]{7,}\d`)

// Extract scans adversary-attributed messages for intelligence. Pure
// function of the history: identical input yields identical output, so
// the report can be recomputed at dispatch time without drift.
func Extract(history []models.Message) models.IntelligenceReport {
	report := models.NewIntelligenceReport()
	seen := map[string]map[string]bool{}

	add := func(category string, dst *[]string, value string) {
		if value == "" {
			return
		}
		if seen[category] == nil {
			seen[category] = map[string]bool{}
		}
		if seen[category][value] {
			return
		}
		seen[category][value] = true
		*dst = append(*dst, value)
	}

	for _, msg := range history {
		if msg.FromAgent() {
			continue
		}

		// Candidate phishing link: everything after the first "http"
		// up to the next space. Best-effort, URL syntax not validated.
		if idx := strings.Index(msg.Text, "http"); idx >= 0 {
			link := msg.Text[idx+len("http"):]
			if sp := strings.IndexByte(link, ' '); sp >= 0 {
				link = link[:sp]
			}
			add("link", &report.PhishingLinks, link)
		}

		// Tokens containing "@" are candidate UPI/payment handles.
		for _, tok := range strings.Fields(msg.Text) {
			if strings.Contains(tok, "@") {
				add("upi", &report.UPIIDs, tok)
			}
		}

		// Phone- and account-like digit runs.
		for _, run := range digitRunRegex.FindAllString(msg.Text, -1) {
			digits := normalizeDigits(run)
			switch {
			case isPhoneLike(digits):
				add("phone", &report.PhoneNumbers, digits)
			case len(digits) >= 9 && len(digits) <= 18:
				add("bank", &report.BankAccounts, digits)
			}
		}

		// Detector vocabulary terms, recorded once across the whole
		// history.
		lower := strings.ToLower(msg.Text)
		for _, kw := range detect.Keywords {
			if strings.Contains(lower, kw) {
				add("keyword", &report.SuspiciousKeywords, kw)
			}
		}
	}

	return report
}

func normalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isPhoneLike treats bare 10-digit numbers and 12-digit numbers with
// the Indian country prefix as phone numbers; other digit runs fall
// through to the account-number bucket.
func isPhoneLike(digits string) bool {
	if len(digits) == 10 {
		return true
	}
	return len(digits) == 12 && strings.HasPrefix(digits, "91")
}
