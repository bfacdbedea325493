package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/shortener"
	"go.uber.org/zap"
)

// AdminHandler handles the token-guarded admin operations: listing,
// analytics, and soft deletion.
type AdminHandler struct {
	repo    shortener.Repository
	create  *shortener.CreateService
	baseURL string
	logger  *zap.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(
	repo shortener.Repository,
	create *shortener.CreateService,
	baseURL string,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		repo:    repo,
		create:  create,
		baseURL: baseURL,
		logger:  logger,
	}
}

// ListURLs returns a page of records, newest first.
func (h *AdminHandler) ListURLs(ctx context.Context, req *ListURLsRequest) (*ListURLsResponse, error) {
	urls, total, err := h.repo.List(ctx, req.Page, req.PageSize)
	if err != nil {
		h.logger.Error("failed to list urls", zap.Error(err))

		return nil, huma.Error503ServiceUnavailable("store unavailable")
	}

	resp := &ListURLsResponse{}
	resp.Body.Total = total
	resp.Body.Page = req.Page
	resp.Body.PageSize = req.PageSize
	resp.Body.URLs = make([]URLView, 0, len(urls))

	for _, record := range urls {
		resp.Body.URLs = append(resp.Body.URLs, URLView{
			ShortCode:      string(record.Code),
			ShortURL:       h.baseURL + "/" + string(record.Code),
			OriginalURL:    record.OriginalURL,
			ClickCount:     record.ClickCount,
			IsActive:       record.IsActive,
			CreatedAt:      record.CreatedAt,
			LastAccessedAt: record.LastAccessedAt,
		})
	}

	return resp, nil
}

// GetAnalytics returns aggregate counters across all records.
func (h *AdminHandler) GetAnalytics(ctx context.Context, _ *struct{}) (*AnalyticsResponse, error) {
	stats, err := h.repo.Analytics(ctx)
	if err != nil {
		h.logger.Error("failed to aggregate analytics", zap.Error(err))

		return nil, huma.Error503ServiceUnavailable("store unavailable")
	}

	resp := &AnalyticsResponse{}
	resp.Body.TotalURLs = stats.TotalURLs
	resp.Body.ActiveURLs = stats.ActiveURLs
	resp.Body.TotalClicks = stats.TotalClicks
	resp.Body.ClicksToday = stats.ClicksToday

	return resp, nil
}

// DeleteURL retires a short code: the record is soft-deleted and its cache
// entry evicted in the same operation, so the code stops resolving
// immediately. Retired codes are never reused.
func (h *AdminHandler) DeleteURL(ctx context.Context, req *DeleteURLRequest) (*DeleteURLResponse, error) {
	if err := h.create.Delete(ctx, shortener.Code(req.Code)); err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to delete url",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error503ServiceUnavailable("store unavailable")
	}

	resp := &DeleteURLResponse{}
	resp.Body.Message = "url deleted"

	return resp, nil
}
