package classifier

import (
	"context"
	"time"

	"honeypot-arena/internal/domain/model"
	"honeypot-arena/internal/domain/ports/adapter"
)

var _ adapter.ClassifierAdapter = (*NoopAdapter)(nil)

// NoopAdapter implements adapter.ClassifierAdapter for local/dev runs.
// It echoes a canned verdict instead of calling the remote service.
type NoopAdapter struct{}

func NewNoopAdapter() *NoopAdapter {
	return &NoopAdapter{}
}

func (a *NoopAdapter) Analyze(ctx context.Context, req adapter.AnalyzeRequest) (*model.Verdict, error) {
	// Simulate slight processing time and respect ctx
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &model.Verdict{
		Status:       "success",
		Reply:        "Oh dear, that sounds serious. What should I do?",
		ScamDetected: false,
		ShouldEngage: true,
		Intelligence: map[string][]string{},
	}, nil
}

func (a *NoopAdapter) Health(ctx context.Context) bool {
	return true
}
