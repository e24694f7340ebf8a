package models

// IntelligenceReport is the set of artifacts mined from adversary
// messages. Each category is deduplicated and keeps first-seen order.
// It is recomputed from history at report time, never maintained
// incrementally.
type IntelligenceReport struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// NewIntelligenceReport returns a report with all categories empty but
// non-nil, so the serialized payload carries [] rather than null.
func NewIntelligenceReport() IntelligenceReport {
	return IntelligenceReport{
		BankAccounts:       []string{},
		UPIIDs:             []string{},
		PhishingLinks:      []string{},
		PhoneNumbers:       []string{},
		SuspiciousKeywords: []string{},
	}
}

// ReportPayload is the final report submitted to the evaluation
// callback endpoint.
type ReportPayload struct {
	SessionID              string             `json:"sessionId"`
	ScamDetected           bool               `json:"scamDetected"`
	TotalMessagesExchanged int                `json:"totalMessagesExchanged"`
	ExtractedIntelligence  IntelligenceReport `json:"extractedIntelligence"`
	AgentNotes             string             `json:"agentNotes"`
}
