package http

import (
	nethttp "net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
)

// RateLimitTracker tracks the server-supplied rate-limit headers and decides
// when the client should proactively wait instead of risking a 429.
type RateLimitTracker struct {
	mu        sync.Mutex
	remaining *int
	resetAt   *time.Time
}

// NewRateLimitTracker creates a tracker with unset state.
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{}
}

// Update records rate-limit state from response headers. A header that is
// absent or unparsable leaves the corresponding field untouched.
func (t *RateLimitTracker) Update(headers nethttp.Header) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if value := headers.Get(constants.HeaderRateLimitRemaining); value != "" {
		remaining, err := strconv.Atoi(value)
		if err == nil {
			t.remaining = &remaining
		}
	}

	if value := headers.Get(constants.HeaderRateLimitReset); value != "" {
		epoch, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			resetAt := time.Unix(epoch, 0)
			t.resetAt = &resetAt
		}
	}
}

// ShouldWait returns the duration to sleep before the next request. A wait is
// reported only when the remaining count is known and below the safety
// margin, and the reset instant is known and still in the future. The wait is
// the time until reset plus a fixed buffer for clock skew.
func (t *RateLimitTracker) ShouldWait() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.remaining == nil || t.resetAt == nil {
		return 0, false
	}

	if *t.remaining >= constants.RateLimitMargin {
		return 0, false
	}

	untilReset := time.Until(*t.resetAt)
	if untilReset <= 0 {
		return 0, false
	}

	return untilReset + constants.RateLimitBuffer, true
}

// Reset clears both fields. Called after a proactive wait completes so stale
// thresholds are not reused; the next response re-establishes state.
func (t *RateLimitTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.remaining = nil
	t.resetAt = nil
}
