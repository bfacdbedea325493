package shortener

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/shortlink-go/internal/cache"
	"github.com/serroba/shortlink-go/internal/clicks"
	"github.com/serroba/shortlink-go/internal/messaging"
	"go.uber.org/zap"
)

// ClickMeta carries request metadata attached to a click event.
type ClickMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// RedirectService resolves short codes back to their original URLs.
//
// The cache is the fast path: a hit answers without touching the store. On
// a miss the store is queried for the active record and the cache is
// backfilled. Click accounting is published fire-and-forget so the redirect
// never waits on it.
type RedirectService struct {
	repo         Repository
	cache        cache.Cache
	cacheTTL     time.Duration
	storeTimeout time.Duration
	cacheTimeout time.Duration
	publishClick messaging.Publish[clicks.Event]
	logger       *zap.Logger
}

// NewRedirectService creates a RedirectService.
func NewRedirectService(
	repo Repository,
	c cache.Cache,
	cacheTTL time.Duration,
	publishClick messaging.Publish[clicks.Event],
	logger *zap.Logger,
) *RedirectService {
	return &RedirectService{
		repo:         repo,
		cache:        c,
		cacheTTL:     cacheTTL,
		storeTimeout: 5 * time.Second,
		cacheTimeout: 250 * time.Millisecond,
		publishClick: publishClick,
		logger:       logger,
	}
}

// Resolve returns the original URL for code. Unknown and deactivated codes
// fail with ErrNotFound. A cache error (including timeout) is treated as a
// miss and the request degrades to the store; a store error on that
// fallback is surfaced to the caller.
func (s *RedirectService) Resolve(ctx context.Context, code Code, meta ClickMeta) (string, error) {
	cacheCtx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	url, err := s.cache.Get(cacheCtx, string(code))

	cancel()

	if err == nil {
		s.recordClick(code, meta)

		return url, nil
	}

	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("cache read failed, falling back to store",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	record, err := s.repo.GetByCode(storeCtx, code)
	if err != nil {
		return "", err
	}

	s.backfillCache(ctx, record)
	s.recordClick(code, meta)

	return record.OriginalURL, nil
}

// Info returns the full record for an active code.
func (s *RedirectService) Info(ctx context.Context, code Code) (*ShortURL, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.repo.GetByCode(storeCtx, code)
}

func (s *RedirectService) backfillCache(ctx context.Context, record *ShortURL) {
	cacheCtx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()

	err := s.cache.Set(cacheCtx, string(record.Code), record.OriginalURL, s.cacheTTL)
	if err != nil {
		s.logger.Warn("failed to backfill cache",
			zap.String("code", string(record.Code)),
			zap.Error(err),
		)
	}
}

// recordClick publishes the accounting event for a successful redirect.
// Failures are logged and dropped, never surfaced to the caller.
func (s *RedirectService) recordClick(code Code, meta ClickMeta) {
	err := s.publishClick(&clicks.Event{
		Code:       string(code),
		AccessedAt: time.Now().UTC(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	})
	if err != nil {
		s.logger.Error("failed to publish click event",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}
}
