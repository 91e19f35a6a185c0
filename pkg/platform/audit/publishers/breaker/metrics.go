package breaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the audit circuit breaker.
type Metrics struct {
	Dropped         prometheus.Counter
	PersistFailures prometheus.Counter
	State           prometheus.Gauge
}

// NewMetrics creates and registers the breaker metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventcare_audit_circuit_breaker_dropped_total",
			Help: "Audit entries dropped while the circuit breaker was open",
		}),
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventcare_audit_persist_failures_total",
			Help: "Audit entries the guarded sink failed to persist",
		}),
		State: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "eventcare_audit_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
	}
}

func (m *Metrics) IncDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

func (m *Metrics) IncPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) SetState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.State.Set(1)
	} else {
		m.State.Set(0)
	}
}
