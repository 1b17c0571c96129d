//go:build !integration

package usecase

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"honeypot-arena/internal/domain/model"
)

func newTestSession() *model.Session {
	return model.NewSession(model.SenderContext{Platform: model.PlatformSMS})
}

func TestDeriveReasoning(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	t.Run("always logs tool, observation and verdict entries", func(t *testing.T) {
		s := newTestSession()
		deriveReasoning(s, "hello", &model.Verdict{}, 1000, rng, false)

		entries := s.Reasoning.Entries()
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		// Newest first: verdict, observation, tool.
		if entries[0].Category != model.ReasoningVerdict {
			t.Errorf("expected newest entry to be the verdict, got %s", entries[0].Category)
		}
		if entries[1].Category != model.ReasoningObservation {
			t.Errorf("expected observation entry, got %s", entries[1].Category)
		}
		if entries[2].Category != model.ReasoningTool {
			t.Errorf("expected tool entry, got %s", entries[2].Category)
		}
	})

	t.Run("echoes non-empty agent notes as an action", func(t *testing.T) {
		s := newTestSession()
		deriveReasoning(s, "hello", &model.Verdict{AgentNotes: "urgency tactics"}, 1000, rng, false)

		found := false
		for _, e := range s.Reasoning.Entries() {
			if e.Category == model.ReasoningAction && e.Text == "urgency tactics" {
				found = true
			}
		}
		if !found {
			t.Error("expected agent notes echoed as an action entry")
		}
	})

	t.Run("plants a decoy code for OTP bait in honeypot mode", func(t *testing.T) {
		s := newTestSession()
		deriveReasoning(s, "send me the OTP", &model.Verdict{}, 1000, rng, true)

		var decoy string
		for _, e := range s.Reasoning.Entries() {
			if e.Category == model.ReasoningAction && strings.Contains(e.Text, "decoy one-time code") {
				decoy = e.Text
			}
		}
		if decoy == "" {
			t.Fatal("expected a decoy-code action entry")
		}
		fields := strings.Fields(decoy)
		var code int
		for _, f := range fields {
			if n, err := strconv.Atoi(f); err == nil {
				code = n
			}
		}
		if code < 100000 || code > 999999 {
			t.Errorf("expected six-digit decoy code, got %d", code)
		}
	})

	t.Run("no decoy outside honeypot mode", func(t *testing.T) {
		s := newTestSession()
		deriveReasoning(s, "send me the OTP", &model.Verdict{}, 1000, rng, false)

		for _, e := range s.Reasoning.Entries() {
			if strings.Contains(e.Text, "decoy") {
				t.Errorf("unexpected decoy entry: %q", e.Text)
			}
		}
	})
}

func TestDeriveTimeline(t *testing.T) {
	titles := func(s *model.Session) []string {
		var out []string
		for _, e := range s.Timeline.Entries() {
			out = append(out, e.Title)
		}
		return out
	}

	t.Run("rules are independent and non-exclusive", func(t *testing.T) {
		s := newTestSession()
		deriveTimeline(s, "URGENT: move to WhatsApp and share the OTP", &model.Verdict{ScamDetected: true}, 1000)

		got := titles(s)
		want := []string{"Bait", "Pivot", "Intercept", "Block"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("benign turn appends nothing", func(t *testing.T) {
		s := newTestSession()
		deriveTimeline(s, "good morning", &model.Verdict{}, 1000)
		if s.Timeline.Len() != 0 {
			t.Errorf("expected empty timeline, got %v", titles(s))
		}
	})
}

func TestDeriveAssets(t *testing.T) {
	findAsset := func(t *testing.T, assets []model.AssetState, name string) model.AssetState {
		t.Helper()
		for _, a := range assets {
			if a.Name == name {
				return a
			}
		}
		t.Fatalf("asset %q missing from catalog", name)
		return model.AssetState{}
	}

	t.Run("refund text traps the bank wallet", func(t *testing.T) {
		assets := deriveAssets("Your refund is pending. Share OTP now.", &model.Verdict{ScamDetected: true})
		if len(assets) != 4 {
			t.Fatalf("expected full catalog of 4 assets, got %d", len(assets))
		}
		if a := findAsset(t, assets, model.AssetBankWallet); !a.Alert {
			t.Errorf("expected bank wallet in trap state, got %+v", a)
		}
		if a := findAsset(t, assets, model.AssetIDDocuments); !a.Alert {
			t.Errorf("expected ID documents heightened on scam verdict, got %+v", a)
		}
		if a := findAsset(t, assets, model.AssetContacts); a.Alert {
			t.Errorf("expected contacts untouched, got %+v", a)
		}
	})

	t.Run("impersonation text flips contacts", func(t *testing.T) {
		assets := deriveAssets("hi mom, my phone broke", &model.Verdict{})
		if a := findAsset(t, assets, model.AssetContacts); !a.Alert {
			t.Errorf("expected contacts alert on impersonation lure, got %+v", a)
		}
	})

	t.Run("recomputation is total, not incremental", func(t *testing.T) {
		assets := deriveAssets("please process my transfer", &model.Verdict{})
		if a := findAsset(t, assets, model.AssetBankWallet); !a.Alert {
			t.Fatalf("expected wallet trap on transfer text, got %+v", a)
		}

		// Next turn without the trigger reverts to the default state.
		assets = deriveAssets("ok thank you", &model.Verdict{})
		for _, a := range assets {
			if a.Alert {
				t.Errorf("expected all assets reverted to non-alert, got %+v", a)
			}
		}
	})
}
