package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts access decisions.
type Metrics struct {
	Decisions *prometheus.CounterVec
}

// New creates a new Metrics instance with the decision counter registered.
func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "eventcare_access_decisions_total",
			Help: "Access decisions by outcome and the rule that produced them",
		}, []string{"outcome", "reason"}),
	}
}

// RecordDecision increments the counter for one decision.
func (m *Metrics) RecordDecision(outcome, reason string) {
	if m != nil {
		m.Decisions.WithLabelValues(outcome, reason).Inc()
	}
}
