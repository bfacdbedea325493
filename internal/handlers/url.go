// Package handlers exposes the shortener services over huma operations.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/base62"
	"github.com/serroba/shortlink-go/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles the public URL shortening operations.
type URLHandler struct {
	create   *shortener.CreateService
	redirect *shortener.RedirectService
	baseURL  string
	logger   *zap.Logger
}

// NewURLHandler creates a URL handler.
func NewURLHandler(
	create *shortener.CreateService,
	redirect *shortener.RedirectService,
	baseURL string,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		create:   create,
		redirect: redirect,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// CreateShortURL shortens a target URL. Repeat submissions of the same URL
// return the original code with no new record.
func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	record, err := h.create.Create(ctx, req.Body.TargetURL, req.Body.CustomAlias)
	if err != nil {
		return nil, h.mapError(err)
	}

	shortURL := h.shortURL(record.Code)

	resp := &CreateShortURLResponse{}
	resp.Headers.Location = shortURL
	resp.Body.ShortCode = string(record.Code)
	resp.Body.ShortURL = shortURL
	resp.Body.OriginalURL = record.OriginalURL
	resp.Body.CreatedAt = record.CreatedAt

	return resp, nil
}

// RedirectToURL resolves a short code and redirects permanently.
func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	meta := RequestMetaFromContext(ctx)

	url, err := h.redirect.Resolve(ctx, shortener.Code(req.Code), shortener.ClickMeta{
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	})
	if err != nil {
		return nil, h.mapError(err)
	}

	resp := &RedirectResponse{Status: http.StatusMovedPermanently}
	resp.Headers.Location = url

	return resp, nil
}

// GetURLInfo returns the full record behind a short code.
func (h *URLHandler) GetURLInfo(ctx context.Context, req *InfoRequest) (*InfoResponse, error) {
	record, err := h.redirect.Info(ctx, shortener.Code(req.Code))
	if err != nil {
		return nil, h.mapError(err)
	}

	return &InfoResponse{Body: h.view(record)}, nil
}

func (h *URLHandler) shortURL(code shortener.Code) string {
	return fmt.Sprintf("%s/%s", h.baseURL, code)
}

func (h *URLHandler) view(record *shortener.ShortURL) URLView {
	return URLView{
		ShortCode:      string(record.Code),
		ShortURL:       h.shortURL(record.Code),
		OriginalURL:    record.OriginalURL,
		ClickCount:     record.ClickCount,
		IsActive:       record.IsActive,
		CreatedAt:      record.CreatedAt,
		LastAccessedAt: record.LastAccessedAt,
	}
}

// mapError translates domain errors into HTTP status errors. Anything
// unrecognized is a store failure: surfaced as 503 so the caller can retry.
func (h *URLHandler) mapError(err error) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidURL):
		return huma.Error400BadRequest("target_url must be an absolute http(s) URL")
	case errors.Is(err, shortener.ErrInvalidAlias):
		return huma.Error400BadRequest("custom_alias must be 1-10 characters from [0-9A-Za-z]")
	case errors.Is(err, shortener.ErrAliasTaken):
		return huma.Error409Conflict("custom alias already taken")
	case errors.Is(err, shortener.ErrNotFound):
		return huma.Error404NotFound("short url not found")
	case errors.Is(err, base62.ErrCapacityExceeded):
		h.logger.Error("short code space exhausted", zap.Error(err))

		return huma.Error500InternalServerError("short code capacity exceeded")
	default:
		h.logger.Error("store operation failed", zap.Error(err))

		return huma.Error503ServiceUnavailable("store unavailable")
	}
}
