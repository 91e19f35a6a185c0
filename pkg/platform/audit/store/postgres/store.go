// Package postgres persists audit entries to the audit_entries table through
// database/sql and lib/pq. The table is insert-only: the store exposes no
// update or delete path.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	id "eventcare/pkg/domain"
	audit "eventcare/pkg/platform/audit"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store implements audit.Store.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store over an open lib/pq handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const insertEntry = `
	INSERT INTO audit_entries (
		id, principal_id, action, resource_kind, resource_id,
		details, origin_address, origin_agent, occurred_at, digest
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO NOTHING
`

const selectEntries = `
	SELECT id, principal_id, action, resource_kind, resource_id,
		   details, origin_address, origin_agent, occurred_at, digest
	FROM audit_entries
`

// Append inserts the entry. Re-appending an id that already exists is a no-op.
func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	// Must stay an untyped nil when empty: lib/pq sends a nil []byte as ''.
	var details any
	if len(entry.Details) > 0 {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		details = raw
	}

	_, err := s.db.ExecContext(ctx, insertEntry,
		entry.ID.String(),
		entry.PrincipalID.String(),
		string(entry.Action),
		string(entry.ResourceKind),
		entry.ResourceID,
		details,
		entry.OriginAddress,
		entry.OriginAgent,
		entry.Timestamp.UTC(),
		entry.Digest,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// AppendWithID inserts an entry under a specific id.
// Used by the Kafka consumer to materialize entries idempotently.
func (s *Store) AppendWithID(ctx context.Context, entryID uuid.UUID, entry audit.Entry) error {
	entry.ID = id.AuditEntryID(entryID)
	return s.Append(ctx, entry)
}

// ListByResource returns entries touching resourceID, newest first.
func (s *Store) ListByResource(ctx context.Context, resourceID string, limit int) ([]audit.Entry, error) {
	return s.query(ctx, "WHERE resource_id = $1", limit, resourceID)
}

// ListByPrincipal returns entries recorded for a principal, newest first.
func (s *Store) ListByPrincipal(ctx context.Context, principalID id.UserID, limit int) ([]audit.Entry, error) {
	return s.query(ctx, "WHERE principal_id = $1", limit, principalID.String())
}

// ListByActions returns entries whose action is any of actions, newest first.
func (s *Store) ListByActions(ctx context.Context, actions []audit.Action, limit int) ([]audit.Entry, error) {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return s.query(ctx, "WHERE action = ANY($1)", limit, pq.Array(names))
}

// ListRecent returns the N most recent entries.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return s.query(ctx, "", limit)
}

func (s *Store) query(ctx context.Context, where string, limit int, args ...any) ([]audit.Entry, error) {
	q := selectEntries + where + "\n\tORDER BY occurred_at DESC, id"
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf("\n\tLIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]audit.Entry, error) {
	entries := []audit.Entry{}

	for rows.Next() {
		var (
			entry       audit.Entry
			entryID     uuid.UUID
			principalID uuid.UUID
			action      string
			kind        string
			details     []byte
		)

		err := rows.Scan(
			&entryID,
			&principalID,
			&action,
			&kind,
			&entry.ResourceID,
			&details,
			&entry.OriginAddress,
			&entry.OriginAgent,
			&entry.Timestamp,
			&entry.Digest,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		entry.ID = id.AuditEntryID(entryID)
		entry.PrincipalID = id.UserID(principalID)
		entry.Action = audit.Action(action)
		entry.ResourceKind = audit.ResourceKind(kind)
		entry.Timestamp = entry.Timestamp.UTC()
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}
