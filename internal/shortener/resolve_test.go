package shortener_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortlink-go/internal/cache"
	"github.com/serroba/shortlink-go/internal/clicks"
	"github.com/serroba/shortlink-go/internal/messaging"
	"github.com/serroba/shortlink-go/internal/shortener"
	"github.com/serroba/shortlink-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedirectService(
	repo shortener.Repository,
	c cache.Cache,
	publish messaging.Publish[clicks.Event],
) *shortener.RedirectService {
	return shortener.NewRedirectService(repo, c, time.Hour, publish, zap.NewNop())
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit never touches the store", func(t *testing.T) {
		repo := &countingRepo{Repository: store.NewMemory()}
		c := cache.NewMemory(100)

		createSvc := shortener.NewCreateService(repo, c, time.Hour, zap.NewNop())
		record, err := createSvc.Create(ctx, testURL, "")
		require.NoError(t, err)

		svc := newRedirectService(repo, c, messaging.NoopPublish[clicks.Event]())

		url, err := svc.Resolve(ctx, record.Code, shortener.ClickMeta{})

		require.NoError(t, err)
		assert.Equal(t, testURL, url)
		assert.Equal(t, int64(0), repo.getByCodeCalls.Load(), "warmed cache must answer without a store read")
	})

	t.Run("cache miss falls back to the store and backfills", func(t *testing.T) {
		repo := &countingRepo{Repository: store.NewMemory()}
		c := cache.NewMemory(100)

		id, err := repo.NextID(ctx)
		require.NoError(t, err)

		_, _, err = repo.CreateOrGet(ctx, &shortener.ShortURL{
			ID:          id,
			Code:        "abc123",
			OriginalURL: testURL,
			ContentKey:  shortener.KeyFor(testURL),
			IsActive:    true,
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)

		svc := newRedirectService(repo, c, messaging.NoopPublish[clicks.Event]())

		url, err := svc.Resolve(ctx, "abc123", shortener.ClickMeta{})

		require.NoError(t, err)
		assert.Equal(t, testURL, url)
		assert.Equal(t, int64(1), repo.getByCodeCalls.Load())

		// Second resolve is served from the backfilled cache.
		url, err = svc.Resolve(ctx, "abc123", shortener.ClickMeta{})

		require.NoError(t, err)
		assert.Equal(t, testURL, url)
		assert.Equal(t, int64(1), repo.getByCodeCalls.Load())
	})

	t.Run("unknown code fails with not found", func(t *testing.T) {
		svc := newRedirectService(store.NewMemory(), cache.NewMemory(100), messaging.NoopPublish[clicks.Event]())

		_, err := svc.Resolve(ctx, "missing", shortener.ClickMeta{})

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("deleted code fails with not found even when it was cached", func(t *testing.T) {
		repo := store.NewMemory()
		c := cache.NewMemory(100)

		createSvc := shortener.NewCreateService(repo, c, time.Hour, zap.NewNop())
		record, err := createSvc.Create(ctx, testURL, "")
		require.NoError(t, err)

		svc := newRedirectService(repo, c, messaging.NoopPublish[clicks.Event]())

		_, err = svc.Resolve(ctx, record.Code, shortener.ClickMeta{})
		require.NoError(t, err)

		require.NoError(t, createSvc.Delete(ctx, record.Code))

		_, err = svc.Resolve(ctx, record.Code, shortener.ClickMeta{})
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("cache failure degrades to the store", func(t *testing.T) {
		repo := store.NewMemory()

		id, err := repo.NextID(ctx)
		require.NoError(t, err)

		_, _, err = repo.CreateOrGet(ctx, &shortener.ShortURL{
			ID:          id,
			Code:        "abc123",
			OriginalURL: testURL,
			ContentKey:  shortener.KeyFor(testURL),
			IsActive:    true,
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)

		svc := newRedirectService(repo, failingCache{}, messaging.NoopPublish[clicks.Event]())

		url, err := svc.Resolve(ctx, "abc123", shortener.ClickMeta{})

		require.NoError(t, err)
		assert.Equal(t, testURL, url)
	})

	t.Run("store failure on the fallback path is surfaced", func(t *testing.T) {
		svc := newRedirectService(failingRepo{}, cache.NewMemory(100), messaging.NoopPublish[clicks.Event]())

		_, err := svc.Resolve(ctx, "abc123", shortener.ClickMeta{})

		assert.ErrorIs(t, err, errMock)
	})

	t.Run("publishes a click event with request metadata", func(t *testing.T) {
		repo := store.NewMemory()
		c := cache.NewMemory(100)

		createSvc := shortener.NewCreateService(repo, c, time.Hour, zap.NewNop())
		record, err := createSvc.Create(ctx, testURL, "")
		require.NoError(t, err)

		recorder := &clickRecorder{}
		svc := newRedirectService(repo, c, recorder.publish())

		_, err = svc.Resolve(ctx, record.Code, shortener.ClickMeta{
			ClientIP:  "192.168.1.1",
			UserAgent: "TestAgent/1.0",
			Referrer:  "https://referrer.example",
		})
		require.NoError(t, err)

		events := recorder.recorded()
		require.Len(t, events, 1)
		assert.Equal(t, string(record.Code), events[0].Code)
		assert.Equal(t, "192.168.1.1", events[0].ClientIP)
		assert.Equal(t, "TestAgent/1.0", events[0].UserAgent)
		assert.False(t, events[0].AccessedAt.IsZero())
	})

	t.Run("resolve succeeds even when publishing fails", func(t *testing.T) {
		repo := store.NewMemory()
		c := cache.NewMemory(100)

		createSvc := shortener.NewCreateService(repo, c, time.Hour, zap.NewNop())
		record, err := createSvc.Create(ctx, testURL, "")
		require.NoError(t, err)

		recorder := &clickRecorder{err: errMock}
		svc := newRedirectService(repo, c, recorder.publish())

		url, err := svc.Resolve(ctx, record.Code, shortener.ClickMeta{})

		require.NoError(t, err)
		assert.Equal(t, testURL, url)
	})
}

func TestInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the active record", func(t *testing.T) {
		repo := store.NewMemory()
		c := cache.NewMemory(100)

		createSvc := shortener.NewCreateService(repo, c, time.Hour, zap.NewNop())
		record, err := createSvc.Create(ctx, testURL, "")
		require.NoError(t, err)

		svc := newRedirectService(repo, c, messaging.NoopPublish[clicks.Event]())

		info, err := svc.Info(ctx, record.Code)

		require.NoError(t, err)
		assert.Equal(t, record.Code, info.Code)
		assert.Equal(t, testURL, info.OriginalURL)
	})

	t.Run("unknown code fails with not found", func(t *testing.T) {
		svc := newRedirectService(store.NewMemory(), cache.NewMemory(100), messaging.NoopPublish[clicks.Event]())

		_, err := svc.Info(ctx, "missing")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}
