package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		submissionsTotal,
		scamsDetectedTotal,
		riskScore,
		gatewayUp,
		gatewayLatencyMs,
	)
}

var (
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_submissions_total",
			Help: "Submissions by outcome (ok/rejected/gateway_error).",
		},
		[]string{"outcome"},
	)

	scamsDetectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "honeypot_scams_detected_total",
			Help: "Verdicts that flagged the message as a scam.",
		},
	)

	riskScore = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "honeypot_risk_score",
			Help: "Current session risk score (0-100).",
		},
	)

	gatewayUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "honeypot_gateway_up",
			Help: "Last known classifier gateway liveness (1 up, 0 down).",
		},
	)

	gatewayLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "honeypot_gateway_latency_ms",
			Help:    "Classifier analyze-call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 30000},
		},
		[]string{"success"},
	)
)

// -------- Engine helpers --------

func IncSubmission(outcome string) {
	submissionsTotal.WithLabelValues(outcome).Inc()
}

func IncScamDetected() {
	scamsDetectedTotal.Inc()
}

func SetRiskScore(score int) {
	riskScore.Set(float64(score))
}

func SetGatewayUp(up bool) {
	if up {
		gatewayUp.Set(1)
		return
	}
	gatewayUp.Set(0)
}

func ObserveGatewayLatency(ms int64, success bool) {
	lbl := "false"
	if success {
		lbl = "true"
	}
	gatewayLatencyMs.WithLabelValues(lbl).Observe(float64(ms))
}
