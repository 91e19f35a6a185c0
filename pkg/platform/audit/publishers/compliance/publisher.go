// Package compliance is the synchronous audit path: Append returns only once
// the durable store has the entry, and a store failure reaches the caller.
package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "eventcare/pkg/platform/audit"
)

type Publisher struct {
	next    audit.Sink
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// New wraps the durable sink. Nothing is retried here; the breaker and
// async layers above decide what a failure means.
func New(next audit.Sink, opts ...Option) *Publisher {
	p := &Publisher{next: next, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) Append(ctx context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("compliance audit rejected: %w", err)
	}

	began := time.Now()
	err := p.next.Append(ctx, entry)
	if err != nil {
		p.metrics.IncPersistFailures()
		p.logger.ErrorContext(ctx, "compliance audit failed",
			"entry_id", entry.ID.String(),
			"action", entry.Action,
			"resource_kind", entry.ResourceKind,
			"resource_id", entry.ResourceID,
			"error", err,
		)
		return fmt.Errorf("persist audit entry %s: %w", entry.ID, err)
	}
	p.metrics.ObservePersistDuration(time.Since(began).Seconds())
	p.metrics.IncEntriesWritten(entry.Action.Category())
	return nil
}
