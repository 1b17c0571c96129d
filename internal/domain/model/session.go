package model

import (
	"time"
)

// InitialRiskScore is the ambient baseline a fresh session starts at.
// No session is ever "fully safe".
const InitialRiskScore = 12

type Platform string

const (
	PlatformSMS      Platform = "sms"
	PlatformWhatsApp Platform = "whatsapp"
	PlatformTelegram Platform = "telegram"
	PlatformEmail    Platform = "email"
	PlatformOther    Platform = "other"
)

type Role string

const (
	RoleCounterpart Role = "counterpart"
	RoleAgent       Role = "agent"
)

// Message is one transcript line. Immutable once appended.
type Message struct {
	Sender    Role   `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// EngagementMetrics accumulates over the life of one session.
type EngagementMetrics struct {
	TestsRun      int   `json:"testsRun"`
	ScamsDetected int   `json:"scamsDetected"`
	AvgLatencyMs  int64 `json:"avgLatencyMs"`
	TimeWastedMin int   `json:"timeWastedMinutes"`
}

// SenderContext seeds a session's platform identity. It survives resets.
type SenderContext struct {
	Platform     Platform
	SenderHeader string
	SenderNumber string
	InContacts   bool
	Language     string
	Locale       string
}

// Session is the aggregate root for one honeypot engagement. It owns the
// transcript, the derived narrative state and the accumulated metrics;
// nothing in it is shared across sessions.
type Session struct {
	ID      string
	Context SenderContext

	Transcript []Message
	Reasoning  ReasoningLog
	Timeline   Timeline
	Assets     []AssetState
	RiskScore  int
	Metrics    EngagementMetrics

	// ScamDetected sticks once any verdict flags a scam.
	ScamDetected bool
	// Intelligence accumulates de-duplicated extraction results across turns.
	Intelligence map[string][]string
	// AgentNotes holds the latest non-empty notes from the classifier.
	AgentNotes string

	CreatedAt time.Time
}

// NewSession returns an empty seeded session. The identifier is assigned
// lazily on the first accepted submission.
func NewSession(sctx SenderContext) *Session {
	return &Session{
		Context:      sctx,
		Transcript:   make([]Message, 0, 16),
		Assets:       DefaultAssets(),
		RiskScore:    InitialRiskScore,
		Intelligence: map[string][]string{},
		CreatedAt:    time.Now(),
	}
}

func (s *Session) AppendMessage(sender Role, text string, ts int64) {
	s.Transcript = append(s.Transcript, Message{Sender: sender, Text: text, Timestamp: ts})
}

// ApplyRiskDelta adds a delta and re-clamps the score into [0,100].
func (s *Session) ApplyRiskDelta(delta int) {
	s.RiskScore += delta
	if s.RiskScore > 100 {
		s.RiskScore = 100
	}
	if s.RiskScore < 0 {
		s.RiskScore = 0
	}
}

// MergeIntelligence folds one verdict's extraction results into the
// session-level accumulation, preserving first-seen order and dropping
// duplicates per category.
func (s *Session) MergeIntelligence(in map[string][]string) {
	for key, items := range in {
		existing := s.Intelligence[key]
		for _, item := range items {
			dup := false
			for _, have := range existing {
				if have == item {
					dup = true
					break
				}
			}
			if !dup {
				existing = append(existing, item)
			}
		}
		s.Intelligence[key] = existing
	}
}

// Snapshot is the immutable view published after every completed operation.
type Snapshot struct {
	SessionID    string              `json:"sessionId"`
	Platform     Platform            `json:"platform"`
	SenderHeader string              `json:"senderHeader"`
	SenderNumber string              `json:"senderNumber"`
	InContacts   bool                `json:"inContacts"`
	Transcript   []Message           `json:"transcript"`
	RiskScore    int                 `json:"riskScore"`
	Reasoning    []ReasoningEntry    `json:"reasoningLog"`
	Timeline     []TimelineEntry     `json:"timeline"`
	Assets       []AssetState        `json:"assets"`
	Metrics      EngagementMetrics   `json:"metrics"`
	ScamDetected bool                `json:"scamDetected"`
	Intelligence map[string][]string `json:"extractedIntelligence"`
}

// Snapshot deep-copies the session into an immutable view.
func (s *Session) Snapshot() *Snapshot {
	transcript := make([]Message, len(s.Transcript))
	copy(transcript, s.Transcript)
	assets := make([]AssetState, len(s.Assets))
	copy(assets, s.Assets)
	intel := make(map[string][]string, len(s.Intelligence))
	for k, v := range s.Intelligence {
		cp := make([]string, len(v))
		copy(cp, v)
		intel[k] = cp
	}
	return &Snapshot{
		SessionID:    s.ID,
		Platform:     s.Context.Platform,
		SenderHeader: s.Context.SenderHeader,
		SenderNumber: s.Context.SenderNumber,
		InContacts:   s.Context.InContacts,
		Transcript:   transcript,
		RiskScore:    s.RiskScore,
		Reasoning:    s.Reasoning.Entries(),
		Timeline:     s.Timeline.Entries(),
		Assets:       assets,
		Metrics:      s.Metrics,
		ScamDetected: s.ScamDetected,
		Intelligence: intel,
	}
}

// Summary is the final result payload produced for external consumption.
type Summary struct {
	SessionID              string              `json:"sessionId"`
	ScamDetected           bool                `json:"scamDetected"`
	TotalMessagesExchanged int                 `json:"totalMessagesExchanged"`
	ExtractedIntelligence  map[string][]string `json:"extractedIntelligence"`
	AgentNotes             string              `json:"agentNotes"`
}

func (s *Session) Summary() *Summary {
	intel := make(map[string][]string, len(s.Intelligence))
	for k, v := range s.Intelligence {
		cp := make([]string, len(v))
		copy(cp, v)
		intel[k] = cp
	}
	return &Summary{
		SessionID:              s.ID,
		ScamDetected:           s.ScamDetected,
		TotalMessagesExchanged: len(s.Transcript),
		ExtractedIntelligence:  intel,
		AgentNotes:             s.AgentNotes,
	}
}
