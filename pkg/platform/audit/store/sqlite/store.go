package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	id "eventcare/pkg/domain"
	audit "eventcare/pkg/platform/audit"

	"github.com/google/uuid"
)

// Store implements audit.Store over SQLite. Timestamps are kept as unix
// microseconds.
type Store struct {
	db     *sql.DB
	writer *Writer
}

func NewStore(db *sql.DB, writer *Writer) *Store {
	return &Store{db: db, writer: writer}
}

func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	var details any
	if len(entry.Details) > 0 {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		details = string(b)
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO audit_entries(
  id, principal_id, action, resource_kind, resource_id,
  details, origin_address, origin_agent, occurred_at_us, digest
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING;
`,
			entry.ID.String(), entry.PrincipalID.String(),
			string(entry.Action), string(entry.ResourceKind), entry.ResourceID,
			details, entry.OriginAddress, entry.OriginAgent,
			entry.Timestamp.UTC().UnixMicro(), entry.Digest,
		); err != nil {
			return fmt.Errorf("insert audit entry: %w", err)
		}
		return nil
	})
}

func (s *Store) AppendWithID(ctx context.Context, entryID uuid.UUID, entry audit.Entry) error {
	entry.ID = id.AuditEntryID(entryID)
	return s.Append(ctx, entry)
}

func (s *Store) ListByResource(ctx context.Context, resourceID string, limit int) ([]audit.Entry, error) {
	return s.query(ctx, "WHERE resource_id = ?", limit, resourceID)
}

func (s *Store) ListByPrincipal(ctx context.Context, principalID id.UserID, limit int) ([]audit.Entry, error) {
	return s.query(ctx, "WHERE principal_id = ?", limit, principalID.String())
}

func (s *Store) ListByActions(ctx context.Context, actions []audit.Action, limit int) ([]audit.Entry, error) {
	if len(actions) == 0 {
		return []audit.Entry{}, nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(actions)), ",")
	args := make([]any, len(actions))
	for i, a := range actions {
		args[i] = string(a)
	}
	return s.query(ctx, "WHERE action IN ("+marks+")", limit, args...)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return s.query(ctx, "", limit)
}

func (s *Store) query(ctx context.Context, where string, limit int, args ...any) ([]audit.Entry, error) {
	q := `
SELECT id, principal_id, action, resource_kind, resource_id,
       details, origin_address, origin_agent, occurred_at_us, digest
FROM audit_entries
` + where + `
ORDER BY occurred_at_us DESC, rowid DESC`
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []audit.Entry{}
	for rows.Next() {
		var (
			entry                audit.Entry
			entryID, principalID string
			action, kind         string
			details              sql.NullString
			occurredUs           int64
		)
		if err := rows.Scan(
			&entryID, &principalID, &action, &kind, &entry.ResourceID,
			&details, &entry.OriginAddress, &entry.OriginAgent, &occurredUs, &entry.Digest,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		eid, err := uuid.Parse(entryID)
		if err != nil {
			return nil, fmt.Errorf("parse audit entry id: %w", err)
		}
		pid, err := uuid.Parse(principalID)
		if err != nil {
			return nil, fmt.Errorf("parse principal id: %w", err)
		}
		entry.ID = id.AuditEntryID(eid)
		entry.PrincipalID = id.UserID(pid)
		entry.Action = audit.Action(action)
		entry.ResourceKind = audit.ResourceKind(kind)
		entry.Timestamp = time.UnixMicro(occurredUs).UTC()
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
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
