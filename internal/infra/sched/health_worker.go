package sched

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"honeypot-arena/internal/domain/ports/adapter"
	"honeypot-arena/internal/infra/metrics"
)

// HealthWorker periodically probes the classifier gateway's liveness and
// remembers the last observed state.
type HealthWorker struct {
	interval   time.Duration
	classifier adapter.ClassifierAdapter
	up         atomic.Bool
	log        *zerolog.Logger
}

func NewHealthWorker(interval time.Duration, classifier adapter.ClassifierAdapter, logger *zerolog.Logger) *HealthWorker {
	hwLog := logger.With().Str("component", "HealthWorker").Logger()
	return &HealthWorker{
		interval:   interval,
		classifier: classifier,
		log:        &hwLog,
	}
}

// Up reports the last known gateway liveness.
func (w *HealthWorker) Up() bool { return w.up.Load() }

func (w *HealthWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("starting gateway health worker")
	w.probe(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping gateway health worker")
			return ctx.Err()
		case <-ticker.C:
			w.probe(ctx)
		}
	}
}

func (w *HealthWorker) probe(ctx context.Context) {
	up := w.classifier.Health(ctx)
	prev := w.up.Swap(up)
	metrics.SetGatewayUp(up)
	if up != prev {
		if up {
			w.log.Info().Msg("classifier gateway reachable")
		} else {
			w.log.Warn().Msg("classifier gateway unreachable")
		}
	}
}
