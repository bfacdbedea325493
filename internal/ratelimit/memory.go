package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count    int64
	openedAt time.Time
}

// MemoryStore is an in-process Store for tests and broker-less runs.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryStore creates an in-memory rate limit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, windowSize time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	w, ok := s.windows[key]
	if !ok || now.Sub(w.openedAt) >= windowSize {
		w = &window{openedAt: now}
		s.windows[key] = w
	}

	w.count++

	return w.count, windowSize - now.Sub(w.openedAt), nil
}

// Compile-time check.
var _ Store = (*MemoryStore)(nil)
