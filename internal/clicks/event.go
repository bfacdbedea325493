// Package clicks carries the best-effort click accounting pipeline.
//
// Redirects publish an Event and return without waiting on the counter
// update; the accounting consumer applies increments to the store. If the
// process dies between responding and persisting, the click is lost, which
// is the accepted trade-off for the redirect latency goal.
package clicks

import "time"

// Topic is the message topic for click events.
const Topic = "url.clicked"

// Event records a single successful redirect.
type Event struct {
	Code       string    `json:"code"`
	AccessedAt time.Time `json:"accessedAt"`
	ClientIP   string    `json:"clientIp,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
}
