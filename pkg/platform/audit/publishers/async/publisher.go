// Package async decouples the request path from audit persistence. Entries
// go into a bounded queue and a single Worker writes them downstream.
//
// Delivery is at-most-once: a full queue drops the entry and reports
// ErrQueueFull, which callers log and count like any other audit failure.
package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	audit "eventcare/pkg/platform/audit"
)

var (
	ErrQueueFull = errors.New("audit queue full")
	ErrClosed    = errors.New("audit publisher closed")
)

const defaultQueueSize = 1024

// Publisher is an audit.Sink backed by a bounded channel.
type Publisher struct {
	mu     sync.RWMutex
	closed bool
	queue  chan audit.Entry

	logger  *slog.Logger
	metrics *Metrics
	size    int

	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithQueueSize bounds the number of entries waiting to be written.
func WithQueueSize(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.size = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New starts a publisher whose worker writes into downstream.
func New(downstream audit.Sink, opts ...Option) *Publisher {
	p := &Publisher{
		logger: slog.Default(),
		size:   defaultQueueSize,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.queue = make(chan audit.Entry, p.size)

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	worker := NewWorker(downstream, p.queue, p.logger, p.metrics)
	go func() {
		defer close(p.done)
		_ = worker.Run(ctx)
	}()
	return p
}

// Append enqueues entry without blocking.
func (p *Publisher) Append(_ context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.metrics.IncDropped()
		return ErrClosed
	}

	select {
	case p.queue <- entry:
		p.metrics.SetQueueDepth(len(p.queue))
		return nil
	default:
		p.metrics.IncDropped()
		return ErrQueueFull
	}
}

// Len reports the number of queued entries.
func (p *Publisher) Len() int {
	return len(p.queue)
}

// Close stops accepting entries and waits for the queue to drain. If ctx ends
// first the worker is stopped and the remaining entries are lost.
func (p *Publisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-p.done
		if lost := len(p.queue); lost > 0 {
			p.logger.Warn("audit queue closed before drain", "lost", lost)
		}
		return ctx.Err()
	}
}
