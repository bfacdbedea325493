package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	code      string
	url       string
	expiresAt time.Time
}

// Memory is an in-process Cache with per-entry TTLs and LRU eviction once
// maxEntries is reached. It backs tests and single-node deployments that
// run without Redis.
type Memory struct {
	mu         sync.Mutex
	maxEntries int
	order      *list.List               // front = most recently used
	entries    map[string]*list.Element // code -> element holding *memoryEntry
	now        func() time.Time
}

// NewMemory creates an in-memory cache bounded to maxEntries.
func NewMemory(maxEntries int) *Memory {
	return &Memory{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[code]
	if !ok {
		return "", ErrMiss
	}

	entry := elem.Value.(*memoryEntry)
	if m.now().After(entry.expiresAt) {
		m.remove(elem)

		return "", ErrMiss
	}

	m.order.MoveToFront(elem)

	return entry.url, nil
}

func (m *Memory) Set(_ context.Context, code, url string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt := m.now().Add(ttl)

	if elem, ok := m.entries[code]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.url = url
		entry.expiresAt = expiresAt
		m.order.MoveToFront(elem)

		return nil
	}

	if m.order.Len() >= m.maxEntries {
		m.evictOldest()
	}

	m.entries[code] = m.order.PushFront(&memoryEntry{
		code:      code,
		url:       url,
		expiresAt: expiresAt,
	})

	return nil
}

func (m *Memory) Evict(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.entries[code]; ok {
		m.remove(elem)
	}

	return nil
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

// evictOldest drops the least-recently-used entry, regardless of its TTL.
func (m *Memory) evictOldest() {
	if back := m.order.Back(); back != nil {
		m.remove(back)
	}
}

func (m *Memory) remove(elem *list.Element) {
	entry := elem.Value.(*memoryEntry)
	m.order.Remove(elem)
	delete(m.entries, entry.code)
}

// Compile-time check.
var _ Cache = (*Memory)(nil)
