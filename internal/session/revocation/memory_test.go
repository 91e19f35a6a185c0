package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTRL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	trl := NewInMemoryTRL()
	trl.now = func() time.Time { return now }

	require.NoError(t, trl.Revoke(ctx, "a", time.Minute))
	revoked, err := trl.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = trl.IsRevoked(ctx, "b")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = trl.IsRevoked(ctx, "a")
	assert.False(t, revoked, "revocation lapses with the token")

	require.NoError(t, trl.Revoke(ctx, "c", time.Minute))
	assert.Len(t, trl.revoked, 1, "expired entries are pruned on write")

	assert.Error(t, trl.Revoke(ctx, "d", 0))
	assert.NoError(t, trl.Revoke(ctx, "", time.Minute))
}
