package memory

import (
	"context"
	"sync"

	id "eventcare/pkg/domain"
	audit "eventcare/pkg/platform/audit"

	"github.com/google/uuid"
)

// InMemoryStore keeps entries in insertion order. Appends with an id that is
// already present are ignored, matching the SQL stores.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []audit.Entry
	seen    map[uuid.UUID]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{seen: make(map[uuid.UUID]struct{})}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.seen = make(map[uuid.UUID]struct{})
}

func (s *InMemoryStore) Append(_ context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := uuid.UUID(entry.ID)
	if _, dup := s.seen[key]; dup {
		return nil
	}
	s.seen[key] = struct{}{}
	s.entries = append(s.entries, cloneEntry(entry))
	return nil
}

// AppendWithID stores entry under entryID. Used by the Kafka consumer.
func (s *InMemoryStore) AppendWithID(ctx context.Context, entryID uuid.UUID, entry audit.Entry) error {
	entry.ID = id.AuditEntryID(entryID)
	return s.Append(ctx, entry)
}

func (s *InMemoryStore) ListByResource(_ context.Context, resourceID string, limit int) ([]audit.Entry, error) {
	return s.newestFirst(limit, func(e audit.Entry) bool { return e.ResourceID == resourceID }), nil
}

func (s *InMemoryStore) ListByPrincipal(_ context.Context, principalID id.UserID, limit int) ([]audit.Entry, error) {
	return s.newestFirst(limit, func(e audit.Entry) bool { return e.PrincipalID == principalID }), nil
}

func (s *InMemoryStore) ListByActions(_ context.Context, actions []audit.Action, limit int) ([]audit.Entry, error) {
	want := make(map[audit.Action]struct{}, len(actions))
	for _, a := range actions {
		want[a] = struct{}{}
	}
	return s.newestFirst(limit, func(e audit.Entry) bool {
		_, ok := want[e.Action]
		return ok
	}), nil
}

// ListRecent returns the most recent entries across all principals.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Entry, error) {
	return s.newestFirst(limit, func(audit.Entry) bool { return true }), nil
}

// Len reports how many entries have been appended.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *InMemoryStore) newestFirst(limit int, match func(audit.Entry) bool) []audit.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []audit.Entry{}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if match(s.entries[i]) {
			out = append(out, cloneEntry(s.entries[i]))
		}
	}
	return out
}

func cloneEntry(e audit.Entry) audit.Entry {
	if e.Details != nil {
		details := make(map[string]string, len(e.Details))
		for k, v := range e.Details {
			details[k] = v
		}
		e.Details = details
	}
	return e
}
