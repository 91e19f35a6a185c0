package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

// fakeClient serves one batch of records, then blocks until ctx ends.
type fakeClient struct {
	mu        sync.Mutex
	batches   []kgo.Fetches
	committed []*kgo.Record
	cancel    context.CancelFunc
}

func (f *fakeClient) PollFetches(ctx context.Context) kgo.Fetches {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.batches) == 0 {
		f.cancel()
		return nil
	}
	next := f.batches[0]
	f.batches = f.batches[1:]
	return next
}

func (f *fakeClient) CommitRecords(_ context.Context, rs ...*kgo.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, rs...)
	return nil
}

func batch(topic string, records ...*kgo.Record) kgo.Fetches {
	return kgo.Fetches{{Topics: []kgo.FetchTopic{{
		Topic:      topic,
		Partitions: []kgo.FetchPartition{{Partition: 0, Records: records}},
	}}}}
}

func record(topic string, offset int64, key string) *kgo.Record {
	return &kgo.Record{Topic: topic, Offset: offset, Key: []byte(key), Value: []byte(`{}`)}
}

func TestConsumer_CommitsHandledRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fc := &fakeClient{cancel: cancel, batches: []kgo.Fetches{
		batch("audit.compliance", record("audit.compliance", 1, "a"), record("audit.compliance", 2, "b")),
	}}
	var seen []string
	h := HandlerFunc(func(_ context.Context, m *Message) error {
		seen = append(seen, string(m.Key))
		return nil
	})

	require.NoError(t, New(fc, h).Run(ctx))
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Len(t, fc.committed, 2)
}

func TestConsumer_RetriesThenSucceeds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fc := &fakeClient{cancel: cancel, batches: []kgo.Fetches{
		batch("t", record("t", 7, "k")),
	}}
	attempts := 0
	h := HandlerFunc(func(context.Context, *Message) error {
		attempts++
		if attempts < 3 {
			return errors.New("store unavailable")
		}
		return nil
	})

	require.NoError(t, New(fc, h, WithRetry(5, 0)).Run(ctx))
	assert.Equal(t, 3, attempts)
	assert.Len(t, fc.committed, 1)
}

func TestConsumer_GivesUpWithoutCommittingFailedRecord(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fc := &fakeClient{cancel: cancel, batches: []kgo.Fetches{
		batch("t", record("t", 1, "ok"), record("t", 2, "bad"), record("t", 3, "later")),
	}}
	h := HandlerFunc(func(_ context.Context, m *Message) error {
		if string(m.Key) == "bad" {
			return errors.New("permanent")
		}
		return nil
	})

	err := New(fc, h, WithRetry(2, 0)).Run(ctx)
	require.Error(t, err)
	require.Len(t, fc.committed, 1)
	assert.Equal(t, int64(1), fc.committed[0].Offset)
}
