// File: internal/usecase/session_uc.go
package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"honeypot-arena/internal/domain"
	"honeypot-arena/internal/domain/model"
	"honeypot-arena/internal/domain/ports/adapter"
	"honeypot-arena/internal/infra/logging"
	"honeypot-arena/internal/infra/metrics"
)

// Compile-time check
var _ SessionUseCase = (*sessionUC)(nil)

// SessionUseCase coordinates one honeypot engagement: it validates input,
// drives the classifier gateway and folds each verdict into session state.
type SessionUseCase interface {
	// Submit runs one inbound counterpart message through the engine and
	// returns the resulting snapshot. Empty input and busy sessions are
	// rejected as no-ops (domain.ErrInvalidArgument / domain.ErrSessionBusy
	// with the unchanged snapshot); gateway failures are absorbed into the
	// reasoning log and never surface as errors.
	Submit(ctx context.Context, text string) (*model.Snapshot, error)
	// Reset discards the whole session and re-seeds it.
	Reset(ctx context.Context) *model.Snapshot
	Snapshot() *model.Snapshot
	Summary() *model.Summary
	// Subscribe registers a snapshot-changed listener. The returned cancel
	// func must be called to release the channel.
	Subscribe() (<-chan *model.Snapshot, func())
}

type sessionUC struct {
	mu      sync.Mutex
	busy    bool
	session *model.Session

	classifier   adapter.ClassifierAdapter
	sctx         model.SenderContext
	honeypotMode bool
	rng          *rand.Rand
	log          *zerolog.Logger

	subMu   sync.Mutex
	subs    map[int]chan *model.Snapshot
	nextSub int
}

// NewSessionUseCase builds the orchestrator. rng may be nil; tests pass a
// seeded source to make the decoy-code and dwell-time draws deterministic.
func NewSessionUseCase(classifier adapter.ClassifierAdapter, sctx model.SenderContext, honeypotMode bool, rng *rand.Rand, logger *zerolog.Logger) *sessionUC {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ucLog := logger.With().Str("component", "SessionUC").Logger()
	return &sessionUC{
		session:      seedSession(sctx),
		classifier:   classifier,
		sctx:         sctx,
		honeypotMode: honeypotMode,
		rng:          rng,
		log:          &ucLog,
		subs:         map[int]chan *model.Snapshot{},
	}
}

func seedSession(sctx model.SenderContext) *model.Session {
	s := model.NewSession(sctx)
	s.Reasoning.Push(model.ReasoningEntry{
		Category:  model.ReasoningObservation,
		Text:      "Honeypot engine armed; waiting for inbound contact",
		Timestamp: time.Now().UnixMilli(),
	})
	return s
}

func (u *sessionUC) Submit(ctx context.Context, text string) (*model.Snapshot, error) {
	defer logging.TraceDuration(u.log, "SessionUC.Submit")()
	text = strings.TrimSpace(text)

	u.mu.Lock()
	if text == "" {
		snap := u.session.Snapshot()
		u.mu.Unlock()
		metrics.IncSubmission("rejected")
		return snap, domain.ErrInvalidArgument
	}
	if u.busy {
		snap := u.session.Snapshot()
		u.mu.Unlock()
		metrics.IncSubmission("rejected")
		return snap, domain.ErrSessionBusy
	}
	u.busy = true
	active := u.session
	now := time.Now().UnixMilli()
	if active.ID == "" {
		active.ID = uuid.NewString()
		active.Timeline.Push(model.TimelineEntry{
			Title:       "Entry",
			Description: "Counterpart opened the engagement",
			Tag:         "entry",
			Timestamp:   now,
		})
	}
	active.AppendMessage(model.RoleCounterpart, text, now)
	req := buildAnalyzeRequest(active)
	u.mu.Unlock()

	ctx = logging.WithSessID(ctx, active.ID)

	start := time.Now()
	verdict, err := u.classifier.Analyze(ctx, req)
	latency := time.Since(start).Milliseconds()

	u.mu.Lock()
	defer func() {
		u.busy = false
		u.mu.Unlock()
	}()

	if u.session != active {
		// Session was reset while the call was in flight; discard the result.
		u.log.Debug().Msg("discarding in-flight verdict after reset")
		return u.session.Snapshot(), nil
	}

	if err != nil {
		logging.With(ctx, u.log).Warn().Err(err).Msg("classifier analyze failed")
		metrics.IncSubmission("gateway_error")
		metrics.ObserveGatewayLatency(latency, false)
		active.Reasoning.Push(model.ReasoningEntry{
			Category:  model.ReasoningVerdict,
			Text:      fmt.Sprintf("Classifier unreachable: %v", err),
			Timestamp: time.Now().UnixMilli(),
		})
		snap := active.Snapshot()
		u.publish(snap)
		return snap, nil
	}

	if verdict.SessionID != "" {
		active.ID = verdict.SessionID
	}
	now = time.Now().UnixMilli()
	active.AppendMessage(model.RoleAgent, verdict.Reply, now)

	prevTests := active.Metrics.TestsRun
	active.Metrics.TestsRun++
	if verdict.ScamDetected {
		active.Metrics.ScamsDetected++
		active.ScamDetected = true
		metrics.IncScamDetected()
	}
	active.Metrics.AvgLatencyMs = nextLatencyAvg(active.Metrics.AvgLatencyMs, prevTests, latency)
	active.MergeIntelligence(verdict.Intelligence)
	if strings.TrimSpace(verdict.AgentNotes) != "" {
		active.AgentNotes = verdict.AgentNotes
	}

	// Fixed derivation order: risk model, narrative deriver, engagement
	// tracker. Each consumes only the raw (message, verdict) pair.
	active.ApplyRiskDelta(riskDelta(text, verdict))
	deriveReasoning(active, text, verdict, now, u.rng, u.honeypotMode)
	deriveTimeline(active, text, verdict, now)
	active.Assets = deriveAssets(text, verdict)
	active.Metrics.TimeWastedMin += dwellMinutes(u.rng, u.honeypotMode, verdict.ShouldEngage)

	metrics.IncSubmission("ok")
	metrics.ObserveGatewayLatency(latency, true)
	metrics.SetRiskScore(active.RiskScore)

	snap := active.Snapshot()
	u.publish(snap)
	return snap, nil
}

func buildAnalyzeRequest(s *model.Session) adapter.AnalyzeRequest {
	history := make([]adapter.Message, 0, len(s.Transcript))
	for _, m := range s.Transcript {
		history = append(history, adapter.Message{
			Sender:    string(m.Sender),
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}
	return adapter.AnalyzeRequest{
		SessionID: s.ID,
		Message:   history[len(history)-1],
		History:   history,
		Metadata: adapter.Metadata{
			Channel:      string(s.Context.Platform),
			Language:     s.Context.Language,
			Locale:       s.Context.Locale,
			Platform:     string(s.Context.Platform),
			SenderHeader: s.Context.SenderHeader,
			SenderNumber: s.Context.SenderNumber,
			InContacts:   s.Context.InContacts,
		},
	}
}

func (u *sessionUC) Reset(ctx context.Context) *model.Snapshot {
	u.mu.Lock()
	u.session = seedSession(u.sctx)
	snap := u.session.Snapshot()
	u.mu.Unlock()

	metrics.SetRiskScore(model.InitialRiskScore)
	u.log.Info().Msg("session reset")
	u.publish(snap)
	return snap
}

func (u *sessionUC) Snapshot() *model.Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.session.Snapshot()
}

func (u *sessionUC) Summary() *model.Summary {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.session.Summary()
}

func (u *sessionUC) Subscribe() (<-chan *model.Snapshot, func()) {
	u.subMu.Lock()
	id := u.nextSub
	u.nextSub++
	ch := make(chan *model.Snapshot, 4)
	u.subs[id] = ch
	u.subMu.Unlock()

	cancel := func() {
		u.subMu.Lock()
		if _, ok := u.subs[id]; ok {
			delete(u.subs, id)
			close(ch)
		}
		u.subMu.Unlock()
	}
	return ch, cancel
}

func (u *sessionUC) publish(snap *model.Snapshot) {
	u.subMu.Lock()
	for _, ch := range u.subs {
		select {
		case ch <- snap:
		default: // slow consumer; drop the frame rather than block the engine
		}
	}
	u.subMu.Unlock()
}
