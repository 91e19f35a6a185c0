package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	id "eventcare/pkg/domain"
	audit "eventcare/pkg/platform/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestBreaker(threshold int, cooldown time.Duration) (*CircuitBreaker, *clock) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(threshold, cooldown)
	cb.now = c.now
	return cb, c
}

func entry() audit.Entry {
	return audit.Entry{
		ID:           id.NewAuditEntryID(),
		PrincipalID:  id.NewUserID(),
		Action:       audit.ActionRead,
		ResourceKind: audit.KindEvent,
		Timestamp:    time.Now(),
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Minute)

	assert.False(t, cb.RecordFailure())
	assert.False(t, cb.RecordFailure())
	assert.True(t, cb.RecordFailure())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_HalfOpenAfterCooldown(t *testing.T) {
	cb, c := newTestBreaker(2, time.Minute)
	cb.RecordFailure()
	cb.RecordFailure()
	require.True(t, cb.IsOpen())

	c.t = c.t.Add(61 * time.Second)
	assert.True(t, cb.Allow(), "trial call allowed after cooldown")

	assert.True(t, cb.RecordFailure(), "trial failure re-opens immediately")
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_SingleTrialWhileHalfOpen(t *testing.T) {
	cb, c := newTestBreaker(1, time.Minute)
	cb.RecordFailure()
	c.t = c.t.Add(2 * time.Minute)

	require.True(t, cb.Allow())
	assert.False(t, cb.Allow(), "second caller waits for the trial")

	cb.RecordSuccess()
	assert.True(t, cb.Allow())
}

func TestCircuitBreaker_SuccessCloses(t *testing.T) {
	cb, _ := newTestBreaker(1, time.Minute)
	cb.RecordFailure()
	require.True(t, cb.IsOpen())

	cb.RecordSuccess()
	assert.False(t, cb.IsOpen())
	assert.True(t, cb.Allow())
}

func TestCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(-1, 0)
	assert.Equal(t, 5, cb.threshold)
	assert.Equal(t, time.Minute, cb.cooldown)
}

func TestSink_DropsWhileOpen(t *testing.T) {
	calls := 0
	failing := audit.SinkFunc(func(context.Context, audit.Entry) error {
		calls++
		return errors.New("db down")
	})
	cb, c := newTestBreaker(2, 30*time.Second)
	sink := New(failing, WithBreaker(cb))
	ctx := context.Background()

	require.Error(t, sink.Append(ctx, entry()))
	require.Error(t, sink.Append(ctx, entry()))

	err := sink.Append(ctx, entry())
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, 2, calls, "open circuit skips the downstream sink")

	c.t = c.t.Add(31 * time.Second)
	require.Error(t, sink.Append(ctx, entry()))
	assert.Equal(t, 3, calls)
}

func TestSink_PassesThroughOnSuccess(t *testing.T) {
	var got []audit.Entry
	ok := audit.SinkFunc(func(_ context.Context, e audit.Entry) error {
		got = append(got, e)
		return nil
	})
	sink := New(ok)

	e := entry()
	require.NoError(t, sink.Append(context.Background(), e))
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
}
