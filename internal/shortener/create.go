package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shortlink-go/internal/base62"
	"github.com/serroba/shortlink-go/internal/cache"
	"go.uber.org/zap"
)

// createAttempts bounds the retries when a generated code happens to hit a
// code already claimed as a custom alias.
const createAttempts = 3

// CreateService allocates short codes idempotently.
//
// Creates for the same normalized URL always return the same record, no
// matter how many callers race: the store's CreateOrGet resolves the race
// with a uniqueness constraint, not application-level locking. The service
// itself holds no mutable state and is safe for concurrent use.
type CreateService struct {
	repo         Repository
	cache        cache.Cache
	cacheTTL     time.Duration
	storeTimeout time.Duration
	cacheTimeout time.Duration
	logger       *zap.Logger
}

// NewCreateService creates a CreateService.
func NewCreateService(
	repo Repository,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CreateService {
	return &CreateService{
		repo:         repo,
		cache:        c,
		cacheTTL:     cacheTTL,
		storeTimeout: 5 * time.Second,
		cacheTimeout: 250 * time.Millisecond,
		logger:       logger,
	}
}

// Create shortens rawURL, reusing the existing active record when the URL
// was shortened before. A non-empty customAlias becomes the code instead of
// the generated one; ErrAliasTaken is returned if it is already bound.
//
// A generated code can land on a code someone already claimed as an alias.
// That caller sent no alias, so the conflict is retried with a fresh ID
// rather than surfaced as ErrAliasTaken.
//
// The new mapping is written through to the cache before returning, so a
// fresh code is resolvable from the fast path immediately. Cache failures
// are logged, never surfaced.
func (s *CreateService) Create(ctx context.Context, rawURL, customAlias string) (*ShortURL, error) {
	normalized, err := Normalize(rawURL)
	if err != nil {
		return nil, err
	}

	if customAlias != "" && !base62.IsValid(customAlias) {
		return nil, ErrInvalidAlias
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	for attempt := 1; ; attempt++ {
		record, err := s.createOnce(storeCtx, normalized, customAlias)
		if err == nil {
			s.warmCache(ctx, record)

			return record, nil
		}

		if customAlias != "" || !errors.Is(err, ErrAliasTaken) {
			return nil, err
		}

		if attempt >= createAttempts {
			// Deliberately not ErrAliasTaken: the caller sent no alias and
			// a 409 would point them at a parameter they never used.
			return nil, fmt.Errorf("short code allocation failed after %d attempts", attempt)
		}

		s.logger.Warn("generated code collided with an alias, retrying",
			zap.Int("attempt", attempt),
		)
	}
}

func (s *CreateService) createOnce(ctx context.Context, normalized, customAlias string) (*ShortURL, error) {
	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	code := customAlias
	if code == "" {
		code, err = base62.Encode(id)
		if err != nil {
			// Code space exhausted. Fatal, not retryable.
			return nil, err
		}
	}

	record, created, err := s.repo.CreateOrGet(ctx, &ShortURL{
		ID:          id,
		Code:        Code(code),
		OriginalURL: normalized,
		ContentKey:  KeyFor(normalized),
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if !created {
		s.logger.Debug("create deduplicated",
			zap.String("code", string(record.Code)),
		)
	}

	return record, nil
}

// Delete soft-deletes the record for code and synchronously evicts its
// cache entry, so a redirect issued right after the delete misses the cache
// and observes the inactive record. Returns ErrNotFound when no active
// record exists.
func (s *CreateService) Delete(ctx context.Context, code Code) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	deleted, err := s.repo.Deactivate(storeCtx, code)
	if err != nil {
		return err
	}

	if !deleted {
		return ErrNotFound
	}

	cacheCtx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()

	if err := s.cache.Evict(cacheCtx, string(code)); err != nil {
		// The entry will still die at its TTL, but until then reads would
		// serve a deleted record; make the failure loud.
		s.logger.Error("failed to evict deleted code from cache",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}

	return nil
}

func (s *CreateService) warmCache(ctx context.Context, record *ShortURL) {
	cacheCtx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()

	err := s.cache.Set(cacheCtx, string(record.Code), record.OriginalURL, s.cacheTTL)
	if err != nil {
		s.logger.Warn("failed to warm cache",
			zap.String("code", string(record.Code)),
			zap.Error(err),
		)
	}
}
