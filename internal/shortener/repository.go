package shortener

import (
	"context"
	"time"
)

// Analytics holds aggregate counters over all records.
type Analytics struct {
	TotalURLs   int64
	ActiveURLs  int64
	TotalClicks int64
	ClicksToday int64
}

// Repository defines the persistent store contract.
//
// The store owns all cross-request coordination: ID allocation is an atomic
// counter, and CreateOrGet resolves concurrent creates for the same URL via
// a uniqueness constraint rather than application-level locking.
type Repository interface {
	// NextID allocates the next value of the store-owned monotonic ID
	// sequence. Allocated IDs are never reused, even when the insert that
	// follows loses a race.
	NextID(ctx context.Context) (int64, error)

	// CreateOrGet atomically inserts url or returns the existing active
	// record with the same content key. created reports whether url was
	// inserted. A code collision (custom alias already bound) fails with
	// ErrAliasTaken and mutates nothing.
	CreateOrGet(ctx context.Context, url *ShortURL) (record *ShortURL, created bool, err error)

	// GetByCode returns the active record for code, or ErrNotFound when the
	// code is unknown or the record has been deactivated.
	GetByCode(ctx context.Context, code Code) (*ShortURL, error)

	// RegisterClick increments the click counter and stamps the last access
	// time for code. It is applied best-effort from the accounting consumer.
	RegisterClick(ctx context.Context, code Code, at time.Time) error

	// Deactivate soft-deletes the record for code. It reports whether an
	// active record existed. Deactivated records never become active again.
	Deactivate(ctx context.Context, code Code) (bool, error)

	// List returns a page of records ordered by creation time, newest
	// first, along with the total record count.
	List(ctx context.Context, page, pageSize int) ([]*ShortURL, int64, error)

	// Analytics returns aggregate counters across all records.
	Analytics(ctx context.Context) (*Analytics, error)
}
