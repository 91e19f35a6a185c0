package async

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the audit queue. A nil *Metrics records nothing.
type Metrics struct {
	Written       prometheus.Counter
	Dropped       prometheus.Counter
	WriteFailures prometheus.Counter
	QueueDepth    prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		Written: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventcare_audit_queue_written_total",
			Help: "Audit entries written downstream by the queue worker",
		}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventcare_audit_queue_dropped_total",
			Help: "Audit entries dropped because the queue was full or closed",
		}),
		WriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventcare_audit_queue_write_failures_total",
			Help: "Audit entries the downstream sink rejected",
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "eventcare_audit_queue_depth",
			Help: "Audit entries waiting in the queue",
		}),
	}
}

func (m *Metrics) IncWritten() {
	if m != nil {
		m.Written.Inc()
	}
}

func (m *Metrics) IncDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

func (m *Metrics) IncWriteFailures() {
	if m != nil {
		m.WriteFailures.Inc()
	}
}

func (m *Metrics) SetQueueDepth(n int) {
	if m != nil {
		m.QueueDepth.Set(float64(n))
	}
}
