// Package shortener holds the short URL domain model and the create and
// resolve services that orchestrate the store, the cache, and click
// accounting.
package shortener

import (
	"errors"
	"time"
)

// Code represents a short URL code.
type Code string

// ContentKey is the SHA-256 fingerprint of a normalized URL, used as the
// idempotency lookup key for creates.
type ContentKey string

// ShortURL represents a shortened URL record.
//
// Lifecycle is one way: a record is created active and can only move to
// inactive (soft delete). ClickCount never decreases and IDs are never
// reused.
type ShortURL struct {
	ID             int64
	Code           Code
	OriginalURL    string
	ContentKey     ContentKey
	ClickCount     int64
	IsActive       bool
	CreatedAt      time.Time
	LastAccessedAt *time.Time
}

var (
	// ErrNotFound is returned when a code does not resolve to an active record.
	ErrNotFound = errors.New("short url not found")

	// ErrInvalidURL is returned when the target URL is not an absolute
	// http(s) URL.
	ErrInvalidURL = errors.New("invalid target url")

	// ErrInvalidAlias is returned when a custom alias violates the code
	// alphabet or length rules.
	ErrInvalidAlias = errors.New("invalid custom alias")

	// ErrAliasTaken is returned when a custom alias collides with an
	// existing code. Nothing is mutated when this is returned.
	ErrAliasTaken = errors.New("custom alias already taken")
)
