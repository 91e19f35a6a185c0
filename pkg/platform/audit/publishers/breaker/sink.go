// Package breaker guards an audit sink with a circuit breaker so a failing
// store is not hammered by every request.
package breaker

import (
	"context"
	"errors"
	"log/slog"

	audit "eventcare/pkg/platform/audit"
)

// ErrOpen is returned for appends dropped while the circuit is open.
var ErrOpen = errors.New("audit circuit breaker open")

// Sink wraps a downstream audit.Sink.
type Sink struct {
	next    audit.Sink
	cb      *CircuitBreaker
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Sink)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) { s.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Sink) { s.metrics = m }
}

// WithBreaker replaces the default breaker (5 failures, one minute).
func WithBreaker(cb *CircuitBreaker) Option {
	return func(s *Sink) { s.cb = cb }
}

func New(next audit.Sink, opts ...Option) *Sink {
	s := &Sink{
		next:   next,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cb == nil {
		s.cb = NewCircuitBreaker(0, 0)
	}
	return s
}

func (s *Sink) Append(ctx context.Context, entry audit.Entry) error {
	if !s.cb.Allow() {
		s.metrics.IncDropped()
		return ErrOpen
	}

	if err := s.next.Append(ctx, entry); err != nil {
		s.metrics.IncPersistFailures()
		if s.cb.RecordFailure() {
			s.metrics.SetState(true)
			s.logger.WarnContext(ctx, "audit circuit breaker open", "error", err)
		}
		return err
	}

	s.cb.RecordSuccess()
	s.metrics.SetState(false)
	return nil
}
