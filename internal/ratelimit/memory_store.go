package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is a process-wide in-memory counter store. Entries are created
// lazily and recycled when their window elapses.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Key]*windowEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[Key]*windowEntry),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock is used by tests to control window expiry.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = now
	return s
}

func (s *MemoryStore) Incr(_ context.Context, key Key, ttl time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &windowEntry{count: 0, resetAt: now.Add(ttl)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt, nil
}
