// File: internal/usecase/narrative.go
package usecase

import (
	"fmt"
	"math/rand"
	"strings"

	"honeypot-arena/internal/domain/model"
)

// deriveReasoning appends the per-turn validation trace for one verdict.
// Idempotent for a given (text, verdict) pair apart from the decoy draw.
func deriveReasoning(s *model.Session, text string, v *model.Verdict, now int64, rng *rand.Rand, honeypotMode bool) {
	s.Reasoning.Push(model.ReasoningEntry{
		Category:  model.ReasoningTool,
		Text:      "Cross-referenced message against fraud-signal index",
		Timestamp: now,
	})

	likelihood := "Low scam likelihood for this message"
	if v.ScamDetected {
		likelihood = "High scam likelihood: classifier flagged active fraud patterns"
	}
	s.Reasoning.Push(model.ReasoningEntry{
		Category:  model.ReasoningObservation,
		Text:      likelihood,
		Timestamp: now,
	})

	if strings.TrimSpace(v.AgentNotes) != "" {
		s.Reasoning.Push(model.ReasoningEntry{
			Category:  model.ReasoningAction,
			Text:      v.AgentNotes,
			Timestamp: now,
		})
	}

	outcome := "Verdict: message classified as benign"
	if v.ScamDetected {
		outcome = "Verdict: message classified as scam"
	}
	s.Reasoning.Push(model.ReasoningEntry{
		Category:  model.ReasoningVerdict,
		Text:      outcome,
		Timestamp: now,
	})

	// The decoy code is narrative bait only; it carries no functional meaning.
	if honeypotMode && strings.Contains(strings.ToLower(text), "otp") {
		code := 100000 + rng.Intn(900000)
		s.Reasoning.Push(model.ReasoningEntry{
			Category:  model.ReasoningAction,
			Text:      fmt.Sprintf("Planted decoy one-time code %d for the attacker to harvest", code),
			Timestamp: now,
		})
	}
}

// deriveTimeline appends notable security events for one turn. The rules are
// independent and non-exclusive: zero or several entries per submission.
func deriveTimeline(s *model.Session, text string, v *model.Verdict, now int64) {
	t := strings.ToLower(text)
	if containsAny(t, "urgent", "immediately") {
		s.Timeline.Push(model.TimelineEntry{
			Title:       "Bait",
			Description: "Urgency pressure detected; engagement bait deployed",
			Tag:         "bait",
			Timestamp:   now,
		})
	}
	if containsAny(t, "whatsapp", "telegram") {
		s.Timeline.Push(model.TimelineEntry{
			Title:       "Pivot",
			Description: "Counterpart pushed for a channel switch",
			Tag:         "pivot",
			Timestamp:   now,
		})
	}
	if containsAny(t, "otp", "pin") {
		s.Timeline.Push(model.TimelineEntry{
			Title:       "Intercept",
			Description: "One-time code solicitation intercepted",
			Tag:         "intercept",
			Timestamp:   now,
		})
	}
	if v.ScamDetected {
		s.Timeline.Push(model.TimelineEntry{
			Title:       "Block",
			Description: "Classifier confirmed scam; countermeasures active",
			Tag:         "block",
			Timestamp:   now,
		})
	}
}

// deriveAssets recomputes the full protected-asset catalog from scratch for
// one (message, verdict) pair. An asset not matched by its rule this turn
// reverts to its default non-alert state.
func deriveAssets(text string, v *model.Verdict) []model.AssetState {
	t := strings.ToLower(text)
	assets := model.DefaultAssets()
	if containsAny(t, "hi mom", "family") {
		setAsset(assets, model.AssetContacts, "Impersonation lure detected", true)
	}
	if v.ScamDetected {
		setAsset(assets, model.AssetIDDocuments, "Probing attempt flagged", true)
	}
	if containsAny(t, "refund", "transfer") {
		setAsset(assets, model.AssetBankWallet, "Exposed as decoy trap", true)
	}
	return assets
}

func setAsset(assets []model.AssetState, name, state string, alert bool) {
	for i := range assets {
		if assets[i].Name == name {
			assets[i].State = state
			assets[i].Alert = alert
			return
		}
	}
}
