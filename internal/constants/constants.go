// Package constants centralizes shared defaults and header names.
package constants

import "time"

// API defaults.
const (
	// DefaultBaseURL is the public GitLab API root used when no base URL is
	// configured.
	DefaultBaseURL = "https://gitlab.com/api/v4"

	// DefaultUserAgent identifies the client on outgoing requests.
	DefaultUserAgent = "gitlab-client-go"
)

// HTTP and retry defaults.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP call.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetryMax is the default number of connection-level retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum connection-level backoff.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum connection-level backoff.
	DefaultRetryWaitMax = 30 * time.Second

	// DefaultBackoffFactor is the base multiplier, in seconds, of the
	// exponential connection-level backoff.
	DefaultBackoffFactor = 2.0
)

// Rate-limit handling.
const (
	// RateLimitMargin is the remaining-request threshold below which the
	// client proactively waits for the rate-limit window to reset.
	RateLimitMargin = 10

	// RateLimitBuffer pads the proactive wait to absorb clock skew between
	// client and server.
	RateLimitBuffer = 1 * time.Second

	// DefaultRetryAfter is the wait applied to a 429 response that carries
	// no Retry-After header.
	DefaultRetryAfter = 60 * time.Second

	// DefaultRateLimitRetryMax caps dispatcher-level 429 retries.
	DefaultRateLimitRetryMax = 5
)

// Caching.
const (
	// DefaultCacheTTL is the time-to-live of cached GET responses.
	DefaultCacheTTL = 300 * time.Second
)

// Response headers consumed by the client.
const (
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"

	// HeaderPrivateToken carries the access token on outgoing requests.
	HeaderPrivateToken = "PRIVATE-TOKEN"
)
