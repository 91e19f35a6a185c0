// Package consumer materializes audit entries published to Kafka into a
// queryable store.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"eventcare/internal/platform/kafka/consumer"
	audit "eventcare/pkg/platform/audit"

	"github.com/google/uuid"
)

// EntryStore appends under a caller-chosen id; repeats are no-ops.
type EntryStore interface {
	AppendWithID(ctx context.Context, entryID uuid.UUID, entry audit.Entry) error
}

// EntryHandler decodes one entry per message. Malformed messages are logged
// and committed; store failures are returned so the message is retried.
type EntryHandler struct {
	store  EntryStore
	sealer *audit.Sealer
	logger *slog.Logger
}

// NewEntryHandler creates a handler. sealer may be nil; when set, entries
// whose digest does not verify are still stored but logged as critical.
func NewEntryHandler(store EntryStore, sealer *audit.Sealer, logger *slog.Logger) *EntryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntryHandler{store: store, sealer: sealer, logger: logger}
}

func (h *EntryHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	entryID, err := uuid.Parse(string(msg.Key))
	if err != nil {
		h.logger.Error("CRITICAL: failed to parse audit entry key",
			"topic", msg.Topic,
			"key", string(msg.Key),
			"error", err,
		)
		return nil
	}

	var entry audit.Entry
	if err := json.Unmarshal(msg.Value, &entry); err != nil {
		h.logger.Error("CRITICAL: failed to unmarshal audit entry",
			"entry_id", entryID,
			"error", err,
		)
		return nil
	}
	if err := entry.Validate(); err != nil {
		h.logger.Error("CRITICAL: invalid audit entry",
			"entry_id", entryID,
			"error", err,
		)
		return nil
	}

	if h.sealer != nil && entry.Digest != "" && !h.sealer.Verify(entry) {
		h.logger.Error("CRITICAL: audit entry digest mismatch",
			"entry_id", entryID,
			"action", string(entry.Action),
		)
	}

	if err := h.store.AppendWithID(ctx, entryID, entry); err != nil {
		h.logger.Error("failed to store audit entry",
			"entry_id", entryID,
			"action", string(entry.Action),
			"error", err,
		)
		return fmt.Errorf("store audit entry: %w", err)
	}

	h.logger.Debug("stored audit entry",
		"entry_id", entryID,
		"action", string(entry.Action),
		"category", string(entry.Action.Category()),
	)
	return nil
}
