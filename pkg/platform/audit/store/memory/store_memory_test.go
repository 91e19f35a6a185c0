package memory

import (
	"context"
	"testing"
	"time"

	id "eventcare/pkg/domain"
	audit "eventcare/pkg/platform/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(principal id.UserID, action audit.Action, resourceID string, at time.Time) audit.Entry {
	return audit.Entry{
		ID:           id.NewAuditEntryID(),
		PrincipalID:  principal,
		Action:       action,
		ResourceKind: audit.KindPatient,
		ResourceID:   resourceID,
		Timestamp:    at,
	}
}

func TestInMemoryStore_ListByResourceNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	user := id.NewUserID()
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, entry(user, audit.ActionCreate, "p-1", base)))
	require.NoError(t, store.Append(ctx, entry(user, audit.ActionRead, "p-1", base.Add(time.Minute))))
	require.NoError(t, store.Append(ctx, entry(user, audit.ActionRead, "p-2", base.Add(2*time.Minute))))

	got, err := store.ListByResource(ctx, "p-1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, audit.ActionRead, got[0].Action)
	assert.Equal(t, audit.ActionCreate, got[1].Action)
}

func TestInMemoryStore_ListByPrincipalRespectsLimit(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	alice, bob := id.NewUserID(), id.NewUserID()
	now := time.Now().UTC()

	for range 5 {
		require.NoError(t, store.Append(ctx, entry(alice, audit.ActionRead, "p", now)))
	}
	require.NoError(t, store.Append(ctx, entry(bob, audit.ActionRead, "p", now)))

	got, err := store.ListByPrincipal(ctx, alice, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, e := range got {
		assert.Equal(t, alice, e.PrincipalID)
	}

	recent, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 6)
	assert.Equal(t, bob, recent[0].PrincipalID)
}

func TestInMemoryStore_DuplicateIDIgnored(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	e := entry(id.NewUserID(), audit.ActionDelete, "p-9", time.Now())

	require.NoError(t, store.Append(ctx, e))
	require.NoError(t, store.Append(ctx, e))
	assert.Equal(t, 1, store.Len())
}

func TestInMemoryStore_RejectsInvalidEntry(t *testing.T) {
	store := NewInMemoryStore()
	err := store.Append(context.Background(), audit.Entry{ID: id.NewAuditEntryID()})
	require.Error(t, err)
	assert.Zero(t, store.Len())
}

func TestInMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	e := entry(id.NewUserID(), audit.ActionUpdate, "p-3", time.Now())
	e.Details = map[string]string{"fields": "name"}
	require.NoError(t, store.Append(ctx, e))

	e.Details["fields"] = "tampered"
	got, err := store.ListByResource(ctx, "p-3", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "name", got[0].Details["fields"])

	got[0].Details["fields"] = "tampered"
	again, _ := store.ListByResource(ctx, "p-3", 1)
	assert.Equal(t, "name", again[0].Details["fields"])
}

func TestInMemoryStore_ListByActions(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	user := id.NewUserID()
	now := time.Now()

	require.NoError(t, store.Append(ctx, entry(user, audit.ActionRead, "a", now)))
	require.NoError(t, store.Append(ctx, entry(user, audit.ActionDelete, "b", now)))
	require.NoError(t, store.Append(ctx, entry(user, audit.ActionCreate, "c", now)))

	got, err := store.ListByActions(ctx, []audit.Action{audit.ActionDelete, audit.ActionCreate}, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ResourceID)
	assert.Equal(t, "b", got[1].ResourceID)
}
