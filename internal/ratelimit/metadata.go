package ratelimit

// MetadataKey marks operations carrying an EndpointConfig in their huma
// operation metadata.
const MetadataKey = "rateLimit"

// EndpointConfig is per-operation rate limit configuration.
type EndpointConfig struct {
	// Disabled skips rate limiting for the operation (health probes).
	Disabled bool
}
