// File: internal/usecase/risk.go
package usecase

import (
	"strings"

	"honeypot-arena/internal/domain/model"
)

// riskDelta is the pure scoring rule for one (message, verdict) pair.
// All triggered conditions are additive and independent; the caller clamps
// the running score into [0,100]. Risk never decays outside an explicit reset.
func riskDelta(text string, v *model.Verdict) int {
	t := strings.ToLower(text)
	delta := 0
	if v.ScamDetected {
		delta += 25
	}
	if containsAny(t, "otp", "pin", "password") {
		delta += 20
	}
	if containsAny(t, "urgent", "immediately") {
		delta += 12
	}
	if containsAny(t, "link", "http") {
		delta += 10
	}
	delta += 4 * v.IntelCount(model.IntelUPIIDs)
	delta += 3 * v.IntelCount(model.IntelPhoneNumbers)
	delta += 5 * v.IntelCount(model.IntelPhishingLinks)
	return delta
}

// containsAny reports whether s contains at least one of the needles.
// Callers pass s already lower-cased.
func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
