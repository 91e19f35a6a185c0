package eventcache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "eventcare/pkg/domain"
	"eventcare/pkg/platform/sentinel"
)

// fakeRedis overrides the three commands the cache uses; any other call
// panics on the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable
	values  map[string]string
	getErr  error
	setErr  error
	setTTLs map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, setTTLs: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.values[key] = value.(string)
	f.setTTLs[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.values, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type countingOrigin struct {
	start time.Time
	err   error
	calls int
}

func (o *countingOrigin) ResolveEventStart(context.Context, id.EventID) (time.Time, error) {
	o.calls++
	return o.start, o.err
}

func quiet() Option { return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))) }

func TestReadThrough(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	origin := &countingOrigin{start: time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)}
	cache := New(rdb, origin, WithTTL(time.Minute), quiet())
	eventID := id.NewEventID()

	first, err := cache.ResolveEventStart(ctx, eventID)
	require.NoError(t, err)
	second, err := cache.ResolveEventStart(ctx, eventID)
	require.NoError(t, err)

	assert.Equal(t, origin.start, first)
	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, origin.calls)
	assert.Equal(t, time.Minute, rdb.setTTLs[keyPrefix+eventID.String()])

	require.NoError(t, cache.Invalidate(ctx, eventID))
	_, err = cache.ResolveEventStart(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 2, origin.calls)
}

func TestNotFoundIsNotCached(t *testing.T) {
	rdb := newFakeRedis()
	origin := &countingOrigin{err: sentinel.ErrNotFound}
	cache := New(rdb, origin, quiet())

	_, err := cache.ResolveEventStart(context.Background(), id.NewEventID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Empty(t, rdb.values)
}

func TestRedisFailureFallsBackToOrigin(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	rdb.setErr = errors.New("connection refused")
	origin := &countingOrigin{start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	cache := New(rdb, origin, quiet())

	got, err := cache.ResolveEventStart(context.Background(), id.NewEventID())
	require.NoError(t, err)
	assert.Equal(t, origin.start, got)
}

func TestMalformedEntryIsReplaced(t *testing.T) {
	rdb := newFakeRedis()
	eventID := id.NewEventID()
	rdb.values[keyPrefix+eventID.String()] = "yesterday"
	origin := &countingOrigin{start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	cache := New(rdb, origin, quiet())

	got, err := cache.ResolveEventStart(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, origin.start, got)
	assert.Equal(t, strconv.FormatInt(origin.start.UnixNano(), 10), rdb.values[keyPrefix+eventID.String()])
}
