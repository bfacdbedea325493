package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// AdminMetadataKey marks operations that require the static admin token.
// The admin auth middleware checks it on every request.
const AdminMetadataKey = "adminOnly"

// RegisterRoutes registers the public URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/api/shorten",
		Summary:       "Create short URL",
		Description:   "Shortens a URL. Repeated submissions of the same URL return the same code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects permanently to the original URL behind the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		OperationID: "get-url-info",
		Method:      http.MethodGet,
		Path:        "/api/info/{code}",
		Summary:     "Get short URL info",
		Tags:        []string{"URLs"},
	}, urlHandler.GetURLInfo)
}

// RegisterAdminRoutes registers the token-guarded admin routes.
func RegisterAdminRoutes(api huma.API, adminHandler *AdminHandler) {
	adminMeta := map[string]any{AdminMetadataKey: true}

	huma.Register(api, huma.Operation{
		OperationID: "admin-list-urls",
		Method:      http.MethodGet,
		Path:        "/api/admin/urls",
		Summary:     "List URLs",
		Tags:        []string{"Admin"},
		Metadata:    adminMeta,
	}, adminHandler.ListURLs)

	huma.Register(api, huma.Operation{
		OperationID: "admin-analytics",
		Method:      http.MethodGet,
		Path:        "/api/admin/analytics",
		Summary:     "Get analytics",
		Tags:        []string{"Admin"},
		Metadata:    adminMeta,
	}, adminHandler.GetAnalytics)

	huma.Register(api, huma.Operation{
		OperationID: "admin-delete-url",
		Method:      http.MethodDelete,
		Path:        "/api/admin/urls/{code}",
		Summary:     "Delete short URL",
		Description: "Soft-deletes the record and evicts its cache entry. Codes are never reused.",
		Tags:        []string{"Admin"},
		Metadata:    adminMeta,
	}, adminHandler.DeleteURL)
}
