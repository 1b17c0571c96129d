// Package metrics owns the engine's prometheus collectors: submission
// outcomes, scam detections, the live risk gauge and classifier gateway
// telemetry. Files enqueue their collectors via init(); cmd/app flushes
// the queue with MustRegister during wiring.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once       sync.Once
	collectors []prometheus.Collector
)

// register enqueues collectors until MustRegister flushes them.
func register(cs ...prometheus.Collector) {
	collectors = append(collectors, cs...)
}

// MustRegister registers every enqueued collector exactly once; later
// calls are no-ops so tests and main can both invoke it.
func MustRegister() {
	once.Do(func() {
		if len(collectors) > 0 {
			prometheus.MustRegister(collectors...)
		}
	})
}
