package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink-go/internal/shortener"
)

const uniqueViolation = "23505"

// Postgres is the durable shortener.Repository.
//
// The schema carries the coordination the services rely on: a sequence owns
// ID allocation, short_code is unique across every record ever created, and
// a partial unique index on content_key over active rows makes CreateOrGet
// a single atomic insert-or-get.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed repository.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS short_urls (
	id               BIGINT PRIMARY KEY,
	short_code       VARCHAR(10) NOT NULL,
	original_url     TEXT NOT NULL,
	content_key      CHAR(64) NOT NULL,
	click_count      BIGINT NOT NULL DEFAULT 0,
	is_active        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_accessed_at TIMESTAMPTZ
);

CREATE SEQUENCE IF NOT EXISTS short_url_ids;

CREATE UNIQUE INDEX IF NOT EXISTS short_urls_code_key
	ON short_urls (short_code);

CREATE UNIQUE INDEX IF NOT EXISTS short_urls_content_key
	ON short_urls (content_key) WHERE is_active;
`

// Migrate creates the schema when it does not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schema)

	return err
}

// Ping reports whether the database is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) NextID(ctx context.Context) (int64, error) {
	var id int64

	err := p.pool.QueryRow(ctx, `SELECT nextval('short_url_ids')`).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

const insertOrGetQuery = `
WITH ins AS (
	INSERT INTO short_urls (id, short_code, original_url, content_key, is_active, created_at)
	VALUES ($1, $2, $3, $4, TRUE, $5)
	ON CONFLICT (content_key) WHERE is_active DO NOTHING
	RETURNING id, short_code, original_url, content_key, click_count, is_active, created_at, last_accessed_at
)
SELECT id, short_code, original_url, content_key, click_count, is_active, created_at, last_accessed_at, TRUE AS created
FROM ins
UNION ALL
SELECT s.id, s.short_code, s.original_url, s.content_key, s.click_count, s.is_active, s.created_at, s.last_accessed_at, FALSE
FROM short_urls s
WHERE s.content_key = $4 AND s.is_active
LIMIT 1
`

const getByKeyQuery = `
SELECT id, short_code, original_url, content_key, click_count, is_active, created_at, last_accessed_at
FROM short_urls
WHERE content_key = $1 AND is_active
`

func (p *Postgres) CreateOrGet(ctx context.Context, url *shortener.ShortURL) (*shortener.ShortURL, bool, error) {
	var (
		record  shortener.ShortURL
		created bool
	)

	row := p.pool.QueryRow(ctx, insertOrGetQuery,
		url.ID,
		string(url.Code),
		url.OriginalURL,
		string(url.ContentKey),
		url.CreatedAt,
	)

	err := scanShortURL(row, &record, &created)
	if err == nil {
		return &record, created, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		// The content_key conflict is absorbed by ON CONFLICT, so a unique
		// violation here is the short_code index: the alias is taken.
		return nil, false, shortener.ErrAliasTaken
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// The insert lost a race but the winner's row was not yet visible to
	// this statement's snapshot. Re-read with a short backoff.
	delay := 10 * time.Millisecond

	for attempt := 0; attempt < 3; attempt++ {
		row := p.pool.QueryRow(ctx, getByKeyQuery, string(url.ContentKey))

		err = scanShortURL(row, &record, nil)
		if err == nil {
			return &record, false, nil
		}

		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, err
		}

		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
	}

	return nil, false, err
}

func (p *Postgres) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	query := `
		SELECT id, short_code, original_url, content_key, click_count, is_active, created_at, last_accessed_at
		FROM short_urls
		WHERE short_code = $1 AND is_active
	`

	var record shortener.ShortURL

	err := scanShortURL(p.pool.QueryRow(ctx, query, string(code)), &record, nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &record, nil
}

func (p *Postgres) RegisterClick(ctx context.Context, code shortener.Code, at time.Time) error {
	query := `
		UPDATE short_urls
		SET click_count = click_count + 1, last_accessed_at = $2
		WHERE short_code = $1 AND is_active
	`

	// Zero rows affected means the record went inactive in the meantime;
	// the click is dropped.
	_, err := p.pool.Exec(ctx, query, string(code), at)

	return err
}

func (p *Postgres) Deactivate(ctx context.Context, code shortener.Code) (bool, error) {
	query := `
		UPDATE short_urls
		SET is_active = FALSE
		WHERE short_code = $1 AND is_active
	`

	tag, err := p.pool.Exec(ctx, query, string(code))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (p *Postgres) List(ctx context.Context, page, pageSize int) ([]*shortener.ShortURL, int64, error) {
	var total int64
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM short_urls`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, short_code, original_url, content_key, click_count, is_active, created_at, last_accessed_at
		FROM short_urls
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	urls := make([]*shortener.ShortURL, 0, pageSize)

	for rows.Next() {
		var record shortener.ShortURL
		if err := scanShortURL(rows, &record, nil); err != nil {
			return nil, 0, err
		}

		urls = append(urls, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return urls, total, nil
}

func (p *Postgres) Analytics(ctx context.Context) (*shortener.Analytics, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE is_active),
			COALESCE(sum(click_count), 0),
			COALESCE(sum(click_count) FILTER (WHERE last_accessed_at >= date_trunc('day', now())), 0)
		FROM short_urls
	`

	var stats shortener.Analytics

	err := p.pool.QueryRow(ctx, query).Scan(
		&stats.TotalURLs,
		&stats.ActiveURLs,
		&stats.TotalClicks,
		&stats.ClicksToday,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// scanShortURL reads one record row; created is scanned only when non-nil,
// for queries that report whether the row was just inserted.
func scanShortURL(row pgx.Row, record *shortener.ShortURL, created *bool) error {
	var (
		code       string
		contentKey string
	)

	dest := []any{
		&record.ID,
		&code,
		&record.OriginalURL,
		&contentKey,
		&record.ClickCount,
		&record.IsActive,
		&record.CreatedAt,
		&record.LastAccessedAt,
	}
	if created != nil {
		dest = append(dest, created)
	}

	if err := row.Scan(dest...); err != nil {
		return err
	}

	record.Code = shortener.Code(code)
	record.ContentKey = shortener.ContentKey(contentKey)

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*Postgres)(nil)
