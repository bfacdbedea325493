// Package store provides shortener.Repository implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/serroba/shortlink-go/internal/shortener"
)

// Memory is an in-memory shortener.Repository used in tests. It mirrors the
// Postgres semantics: IDs come from a monotonic counter, codes are unique
// across active and inactive records, and CreateOrGet is atomic under the
// store mutex.
type Memory struct {
	mu        sync.Mutex
	nextID    int64
	byCode    map[shortener.Code]*shortener.ShortURL
	activeKey map[shortener.ContentKey]shortener.Code
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		byCode:    make(map[shortener.Code]*shortener.ShortURL),
		activeKey: make(map[shortener.ContentKey]shortener.Code),
	}
}

// Ping always succeeds; the in-memory store has no backend to lose.
func (m *Memory) Ping(_ context.Context) error {
	return nil
}

func (m *Memory) NextID(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++

	return m.nextID, nil
}

func (m *Memory) CreateOrGet(_ context.Context, url *shortener.ShortURL) (*shortener.ShortURL, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if code, ok := m.activeKey[url.ContentKey]; ok {
		existing := *m.byCode[code]

		return &existing, false, nil
	}

	if _, ok := m.byCode[url.Code]; ok {
		return nil, false, shortener.ErrAliasTaken
	}

	stored := *url
	m.byCode[stored.Code] = &stored
	m.activeKey[stored.ContentKey] = stored.Code

	copied := stored

	return &copied, true, nil
}

func (m *Memory) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url, ok := m.byCode[code]
	if !ok || !url.IsActive {
		return nil, shortener.ErrNotFound
	}

	copied := *url

	return &copied, nil
}

func (m *Memory) RegisterClick(_ context.Context, code shortener.Code, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	url, ok := m.byCode[code]
	if !ok || !url.IsActive {
		// Record deactivated between redirect and increment; drop.
		return nil
	}

	url.ClickCount++
	url.LastAccessedAt = &at

	return nil
}

func (m *Memory) Deactivate(_ context.Context, code shortener.Code) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url, ok := m.byCode[code]
	if !ok || !url.IsActive {
		return false, nil
	}

	url.IsActive = false
	delete(m.activeKey, url.ContentKey)

	return true, nil
}

func (m *Memory) List(_ context.Context, page, pageSize int) ([]*shortener.ShortURL, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*shortener.ShortURL, 0, len(m.byCode))
	for _, url := range m.byCode {
		copied := *url
		all = append(all, &copied)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}

		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))

	start := (page - 1) * pageSize
	if start >= len(all) {
		return []*shortener.ShortURL{}, total, nil
	}

	end := min(start+pageSize, len(all))

	return all[start:end], total, nil
}

func (m *Memory) Analytics(_ context.Context) (*shortener.Analytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &shortener.Analytics{}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for _, url := range m.byCode {
		stats.TotalURLs++
		stats.TotalClicks += url.ClickCount

		if url.IsActive {
			stats.ActiveURLs++
		}

		if url.LastAccessedAt != nil && !url.LastAccessedAt.Before(today) {
			stats.ClicksToday += url.ClickCount
		}
	}

	return stats, nil
}

// Compile-time check.
var _ shortener.Repository = (*Memory)(nil)
