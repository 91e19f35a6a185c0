package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for guarded executions.
type Metrics struct {
	ExecuteDuration *prometheus.HistogramVec
	AuditFailures   prometheus.Counter
}

// New creates a new Metrics instance with all gateway metrics registered.
func New() *Metrics {
	return &Metrics{
		ExecuteDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eventcare_gateway_execute_duration_seconds",
			Help:    "Duration of guarded executions by action, resource kind and final state",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"action", "kind", "state"}),

		AuditFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventcare_gateway_audit_failures_total",
			Help: "Audit appends that failed after a successful guarded action",
		}),
	}
}

// ObserveExecution records one finished execution.
func (m *Metrics) ObserveExecution(action, kind, state string, d time.Duration) {
	if m != nil {
		m.ExecuteDuration.WithLabelValues(action, kind, state).Observe(d.Seconds())
	}
}

// IncAuditFailures counts a swallowed audit failure.
func (m *Metrics) IncAuditFailures() {
	if m != nil {
		m.AuditFailures.Inc()
	}
}
