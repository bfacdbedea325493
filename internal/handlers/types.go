package handlers

import "time"

// CreateShortURLRequest is the request for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		TargetURL   string `doc:"The URL to shorten"                example:"https://www.example.com/very/long/url" json:"target_url"`
		CustomAlias string `doc:"Optional custom code for the URL"  example:"mylink"                                json:"custom_alias,omitempty" required:"false"`
	}
}

// CreateShortURLResponse is the response for a created (or deduplicated)
// short URL.
type CreateShortURLResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		ShortCode   string    `doc:"The short code"     example:"8M0kX"                                 json:"short_code"`
		ShortURL    string    `doc:"The full short URL" example:"http://localhost:8080/8M0kX"           json:"short_url"`
		OriginalURL string    `doc:"The original URL"   example:"https://www.example.com/very/long/url" json:"original_url"`
		CreatedAt   time.Time `doc:"Creation time"      json:"created_at"`
	}
}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"8M0kX" maxLength:"10" path:"code"`
}

// RedirectResponse carries the permanent redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// InfoRequest is the request for inspecting a short URL.
type InfoRequest struct {
	Code string `doc:"The short code" example:"8M0kX" maxLength:"10" path:"code"`
}

// InfoResponse is the full view of a short URL record.
type InfoResponse struct {
	Body URLView
}

// URLView is the serialized form of a short URL record.
type URLView struct {
	ShortCode      string     `json:"short_code"`
	ShortURL       string     `json:"short_url"`
	OriginalURL    string     `json:"original_url"`
	ClickCount     int64      `json:"click_count"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
}

// ListURLsRequest is the admin request for paginated listing.
type ListURLsRequest struct {
	Page     int `default:"1"  doc:"Page number"     minimum:"1" query:"page"`
	PageSize int `default:"20" doc:"Items per page"  maximum:"100" minimum:"1" query:"page_size"`
}

// ListURLsResponse is the admin paginated listing.
type ListURLsResponse struct {
	Body struct {
		Total    int64     `json:"total"`
		Page     int       `json:"page"`
		PageSize int       `json:"page_size"`
		URLs     []URLView `json:"urls"`
	}
}

// AnalyticsResponse carries aggregate counters.
type AnalyticsResponse struct {
	Body struct {
		TotalURLs   int64 `json:"total_urls"`
		ActiveURLs  int64 `json:"active_urls"`
		TotalClicks int64 `json:"total_clicks"`
		ClicksToday int64 `json:"clicks_today"`
	}
}

// DeleteURLRequest is the admin request for retiring a code.
type DeleteURLRequest struct {
	Code string `doc:"The short code" maxLength:"10" path:"code"`
}

// DeleteURLResponse confirms a deletion.
type DeleteURLResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}
