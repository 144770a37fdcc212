package gitlab

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError represents a request that failed against the GitLab API. It wraps
// transport failures, non-2xx status codes, and response decode failures into
// a single error kind carrying the attempt count and the underlying cause.
type APIError struct {
	// StatusCode is the HTTP status of the final response, or 0 when the
	// request never produced one (connection refused, timeout).
	StatusCode int
	// Message is a human-readable description, taken from the API error body
	// when one was returned.
	Message string
	// Attempts is the total number of transport attempts made, including
	// connection-level retries.
	Attempts int
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error: %s (status: %d, attempts: %d)", e.Message, e.StatusCode, e.Attempts)
	}

	if e.Err != nil {
		return fmt.Sprintf("API error: %s (attempts: %d): %v", e.Message, e.Attempts, e.Err)
	}

	return fmt.Sprintf("API error: %s (attempts: %d)", e.Message, e.Attempts)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Err
}

// RateLimitError is returned when the server keeps answering 429 after the
// configured number of rate-limit retries has been spent.
type RateLimitError struct {
	// RetryAfter is the wait the server requested on the last 429 response.
	RetryAfter time.Duration
	// Attempts is the number of 429-driven retries that were performed.
	Attempts int
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded after %d retries (server requested %s wait)", e.Attempts, e.RetryAfter)
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrTokenRequired   = errors.New("authentication token is required")

	ErrCacheKeyNotFound   = errors.New("key not found in cache")
	ErrCacheEntryExpired  = errors.New("cache entry expired")
	ErrCacheDisabled      = errors.New("cache disabled")
	ErrNATSConfigRequired = errors.New("NATS configuration required for NATS cache")
)

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	rlErr := &RateLimitError{}

	return errors.As(err, &rlErr)
}
