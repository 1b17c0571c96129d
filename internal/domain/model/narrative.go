package model

// Bounded history caps. Insertion past a cap evicts the oldest entry.
const (
	ReasoningLogCap = 60
	TimelineCap     = 18
)

type ReasoningCategory string

const (
	ReasoningObservation ReasoningCategory = "observation"
	ReasoningAction      ReasoningCategory = "action"
	ReasoningTool        ReasoningCategory = "tool"
	ReasoningVerdict     ReasoningCategory = "verdict"
)

// ReasoningEntry is one line of the engine's validation trace.
type ReasoningEntry struct {
	Category  ReasoningCategory `json:"category"`
	Text      string            `json:"text"`
	Timestamp int64             `json:"timestamp"`
}

// ReasoningLog keeps the most recent entries newest-first.
type ReasoningLog struct {
	entries []ReasoningEntry
}

func (l *ReasoningLog) Push(e ReasoningEntry) {
	l.entries = append([]ReasoningEntry{e}, l.entries...)
	if len(l.entries) > ReasoningLogCap {
		l.entries = l.entries[:ReasoningLogCap]
	}
}

func (l *ReasoningLog) Len() int { return len(l.entries) }

// Entries returns a copy, newest first.
func (l *ReasoningLog) Entries() []ReasoningEntry {
	out := make([]ReasoningEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// TimelineEntry is one notable security event.
type TimelineEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	Timestamp   int64  `json:"timestamp"`
}

// Timeline keeps the most recent entries in chronological order.
type Timeline struct {
	entries []TimelineEntry
}

func (t *Timeline) Push(e TimelineEntry) {
	t.entries = append(t.entries, e)
	if len(t.entries) > TimelineCap {
		t.entries = t.entries[len(t.entries)-TimelineCap:]
	}
}

func (t *Timeline) Len() int { return len(t.entries) }

// Entries returns a copy, oldest first.
func (t *Timeline) Entries() []TimelineEntry {
	out := make([]TimelineEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// AssetState describes one protected resource as rendered to the arena.
// The catalog is fixed; states are recomputed in full on every message.
type AssetState struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Alert bool   `json:"alert"`
}

// Protected asset names.
const (
	AssetContacts     = "Contacts"
	AssetIDDocuments  = "ID Documents"
	AssetBankWallet   = "Bank Wallet"
	AssetMessageVault = "Message Vault"
)

// DefaultAssets returns the four protected assets in their non-alert states.
func DefaultAssets() []AssetState {
	return []AssetState{
		{Name: AssetContacts, State: "Synced and sealed"},
		{Name: AssetIDDocuments, State: "Encrypted at rest"},
		{Name: AssetBankWallet, State: "Shielded"},
		{Name: AssetMessageVault, State: "Locked"},
	}
}
