package async

import (
	"context"
	"log/slog"

	audit "eventcare/pkg/platform/audit"
)

// Worker drains queued entries into a downstream sink. A failed write is
// logged and counted; the entry is not retried.
type Worker struct {
	sink    audit.Sink
	inbox   <-chan audit.Entry
	logger  *slog.Logger
	metrics *Metrics
}

func NewWorker(sink audit.Sink, inbox <-chan audit.Entry, logger *slog.Logger, metrics *Metrics) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger, metrics: metrics}
}

// Run processes entries until the inbox is closed and empty, or ctx ends.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.metrics.SetQueueDepth(len(w.inbox))
			if err := w.sink.Append(ctx, entry); err != nil {
				w.metrics.IncWriteFailures()
				w.logger.ErrorContext(ctx, "audit write failed",
					"entry_id", entry.ID.String(),
					"action", string(entry.Action),
					"error", err,
				)
				continue
			}
			w.metrics.IncWritten()
		}
	}
}
