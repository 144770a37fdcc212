package gitlab_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *gitlab.APIError
		expected string
	}{
		{
			name:     "status error",
			err:      &gitlab.APIError{StatusCode: 404, Message: "404 Project Not Found", Attempts: 1},
			expected: "API error: 404 Project Not Found (status: 404, attempts: 1)",
		},
		{
			name:     "transport error",
			err:      &gitlab.APIError{Message: "GET /projects failed", Attempts: 4, Err: errors.New("connection refused")},
			expected: "API error: GET /projects failed (attempts: 4): connection refused",
		},
		{
			name:     "bare message",
			err:      &gitlab.APIError{Message: "encoding request body"},
			expected: "API error: encoding request body (attempts: 0)",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.err.Error())
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := &gitlab.APIError{Message: "request failed", Err: cause}

	require.ErrorIs(t, err, cause)
}

func TestRateLimitError_Error(t *testing.T) {
	t.Parallel()

	err := &gitlab.RateLimitError{RetryAfter: 30 * time.Second, Attempts: 5}
	assert.Equal(t, "rate limit exceeded after 5 retries (server requested 30s wait)", err.Error())
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("getting project: %w", &gitlab.APIError{StatusCode: 404, Message: "not found"})
	unauthorized := fmt.Errorf("getting user: %w", &gitlab.APIError{StatusCode: 401, Message: "unauthorized"})
	forbidden := &gitlab.APIError{StatusCode: 403, Message: "forbidden"}
	rateLimited := fmt.Errorf("listing commits: %w", &gitlab.RateLimitError{RetryAfter: time.Minute, Attempts: 5})

	assert.True(t, gitlab.IsNotFound(notFound))
	assert.False(t, gitlab.IsNotFound(unauthorized))

	assert.True(t, gitlab.IsUnauthorized(unauthorized))
	assert.False(t, gitlab.IsUnauthorized(notFound))

	assert.True(t, gitlab.IsForbidden(forbidden))
	assert.False(t, gitlab.IsForbidden(notFound))

	assert.True(t, gitlab.IsRateLimited(rateLimited))
	assert.False(t, gitlab.IsRateLimited(notFound))
	assert.False(t, gitlab.IsRateLimited(nil))
}
