package model

// Verdict is the classifier's structured judgement on one message. It is a
// validated input to the engine and is never mutated after decoding.
type Verdict struct {
	SessionID    string
	Status       string
	Reply        string
	ScamDetected bool
	ShouldEngage bool
	// Intelligence maps extraction categories (upiIds, phoneNumbers,
	// phishingLinks, ...) to the strings pulled out of the conversation.
	// Missing or malformed categories are simply absent.
	Intelligence map[string][]string
	AgentNotes   string
}

// IntelCount returns the number of extracted items for a category.
func (v *Verdict) IntelCount(key string) int {
	if v == nil || v.Intelligence == nil {
		return 0
	}
	return len(v.Intelligence[key])
}

// Canonical extraction categories produced by the classifier.
const (
	IntelBankAccounts  = "bankAccounts"
	IntelUPIIDs        = "upiIds"
	IntelPhishingLinks = "phishingLinks"
	IntelPhoneNumbers  = "phoneNumbers"
	IntelKeywords      = "suspiciousKeywords"
)
