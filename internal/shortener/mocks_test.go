package shortener_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/serroba/shortlink-go/internal/cache"
	"github.com/serroba/shortlink-go/internal/clicks"
	"github.com/serroba/shortlink-go/internal/messaging"
	"github.com/serroba/shortlink-go/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "https://www.example.com/very/long/url"

// countingRepo wraps a Repository and counts read calls, so tests can
// assert the cache fast path never touches the store.
type countingRepo struct {
	shortener.Repository

	getByCodeCalls atomic.Int64
}

func (c *countingRepo) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	c.getByCodeCalls.Add(1)

	return c.Repository.GetByCode(ctx, code)
}

// failingRepo fails every operation, standing in for an unreachable store.
type failingRepo struct{}

func (failingRepo) NextID(_ context.Context) (int64, error) { return 0, errMock }

func (failingRepo) CreateOrGet(_ context.Context, _ *shortener.ShortURL) (*shortener.ShortURL, bool, error) {
	return nil, false, errMock
}

func (failingRepo) GetByCode(_ context.Context, _ shortener.Code) (*shortener.ShortURL, error) {
	return nil, errMock
}

func (failingRepo) RegisterClick(_ context.Context, _ shortener.Code, _ time.Time) error {
	return errMock
}

func (failingRepo) Deactivate(_ context.Context, _ shortener.Code) (bool, error) {
	return false, errMock
}

func (failingRepo) List(_ context.Context, _, _ int) ([]*shortener.ShortURL, int64, error) {
	return nil, 0, errMock
}

func (failingRepo) Analytics(_ context.Context) (*shortener.Analytics, error) {
	return nil, errMock
}

// failingCache fails every operation, standing in for an unreachable cache.
type failingCache struct{}

func (failingCache) Get(_ context.Context, _ string) (string, error) { return "", errMock }

func (failingCache) Set(_ context.Context, _, _ string, _ time.Duration) error { return errMock }

func (failingCache) Evict(_ context.Context, _ string) error { return errMock }

func (failingCache) Ping(_ context.Context) error { return errMock }

// clickRecorder captures published click events.
type clickRecorder struct {
	mu     sync.Mutex
	events []clicks.Event
	err    error
}

func (r *clickRecorder) publish() messaging.Publish[clicks.Event] {
	return func(event *clicks.Event) error {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.err != nil {
			return r.err
		}

		r.events = append(r.events, *event)

		return nil
	}
}

func (r *clickRecorder) recorded() []clicks.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]clicks.Event(nil), r.events...)
}

// Compile-time checks.
var (
	_ shortener.Repository = (*failingRepo)(nil)
	_ cache.Cache          = (*failingCache)(nil)
)
