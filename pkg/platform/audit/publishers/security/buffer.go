// Package security holds recent access denials in memory for review.
package security

import (
	"context"
	"sync"

	audit "eventcare/pkg/platform/audit"
)

const defaultCapacity = 10000

// RingBuffer keeps the last capacity denials. Older ones are overwritten
// and counted as dropped; the buffer never blocks a caller.
type RingBuffer struct {
	mu       sync.Mutex
	slots    []audit.SecurityEvent
	capacity int
	written  uint64
}

func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &RingBuffer{slots: make([]audit.SecurityEvent, capacity), capacity: capacity}
}

func (b *RingBuffer) Enqueue(event audit.SecurityEvent) {
	b.mu.Lock()
	b.slots[b.written%uint64(b.capacity)] = event
	b.written++
	b.mu.Unlock()
}

// RecordDenial satisfies gateway.DenialRecorder.
func (b *RingBuffer) RecordDenial(_ context.Context, event audit.SecurityEvent) {
	b.Enqueue(event)
}

// Recent copies up to n events, newest first. n <= 0 means all of them.
func (b *RingBuffer) Recent(n int) []audit.SecurityEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	held := b.held()
	if n <= 0 || n > held {
		n = held
	}
	out := make([]audit.SecurityEvent, 0, n)
	for seq := b.written; len(out) < n; seq-- {
		out = append(out, b.slots[(seq-1)%uint64(b.capacity)])
	}
	return out
}

func (b *RingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.held()
}

// Dropped counts events overwritten since construction.
func (b *RingBuffer) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(b.written) - int64(b.held())
}

func (b *RingBuffer) held() int {
	if b.written < uint64(b.capacity) {
		return int(b.written)
	}
	return b.capacity
}
