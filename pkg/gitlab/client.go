package gitlab

import (
	"context"
	"time"
)

// ProjectsClient provides access to project resources.
type ProjectsClient interface {
	Get(ctx context.Context, projectID string, opts ...RequestOption) (*Project, error)
	List(ctx context.Context, params *ListProjectsOptions, opts ...RequestOption) ([]Project, error)
}

// RepositoriesClient provides access to repository trees and files.
type RepositoriesClient interface {
	ListTree(ctx context.Context, projectID string, params *ListTreeOptions, opts ...RequestOption) ([]TreeEntry, error)
	GetFile(ctx context.Context, projectID, filePath, ref string, opts ...RequestOption) (*File, error)
	GetRawFile(ctx context.Context, projectID, filePath, ref string, opts ...RequestOption) ([]byte, error)
}

// CommitsClient provides access to repository commits.
type CommitsClient interface {
	List(ctx context.Context, projectID string, params *ListCommitsOptions, opts ...RequestOption) ([]Commit, error)
	Get(ctx context.Context, projectID, sha string, opts ...RequestOption) (*Commit, error)
	GetDiff(ctx context.Context, projectID, sha string, opts ...RequestOption) ([]Diff, error)
}

// BranchesClient provides access to repository branches.
type BranchesClient interface {
	List(ctx context.Context, projectID string, params *ListBranchesOptions, opts ...RequestOption) ([]Branch, error)
	Get(ctx context.Context, projectID, branch string, opts ...RequestOption) (*Branch, error)
	Create(ctx context.Context, projectID, branch, ref string) (*Branch, error)
	Delete(ctx context.Context, projectID, branch string) error
}

// MergeRequestsClient provides access to merge requests.
type MergeRequestsClient interface {
	List(ctx context.Context, projectID string, params *ListMergeRequestsOptions, opts ...RequestOption) ([]MergeRequest, error)
	Get(ctx context.Context, projectID string, iid int, opts ...RequestOption) (*MergeRequest, error)
	Create(ctx context.Context, projectID string, request *CreateMergeRequestRequest) (*MergeRequest, error)
}

// UsersClient provides access to user resources. Current requires a
// configured token and fails with ErrTokenRequired before any network call
// when none is set.
type UsersClient interface {
	Current(ctx context.Context, opts ...RequestOption) (*User, error)
	Get(ctx context.Context, userID int, opts ...RequestOption) (*User, error)
}

// Client is the aggregate interface over all resource clients.
type Client interface {
	Projects() ProjectsClient
	Repositories() RepositoriesClient
	Commits() CommitsClient
	Branches() BranchesClient
	MergeRequests() MergeRequestsClient
	Users() UsersClient

	// ClearCache drops all cached responses.
	ClearCache(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a gitlab.Client.
//
// The zero value of every optional field selects a sensible default; only
// BaseURL is normalized (and defaulted to the public gitlab.com API root) by
// the glclient composition root. Token is optional: without one, requests are
// sent unauthenticated and identity-requiring calls fail fast.
type Config struct {
	// BaseURL is the API root, e.g. "https://gitlab.example.com/api/v4".
	BaseURL string

	// Token is the personal/project access token sent via the PRIVATE-TOKEN
	// header. Optional.
	Token string

	// HTTPTimeout bounds each individual HTTP call.
	HTTPTimeout time.Duration

	// RetryMax is the number of connection-level retries for 5xx responses
	// and connection errors.
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the connection-level backoff.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// BackoffFactor is the base multiplier (in seconds) of the exponential
	// connection-level backoff.
	BackoffFactor float64

	// RateLimitRetryMax caps dispatcher-level retries of 429 responses.
	// Exceeding the cap surfaces a *RateLimitError.
	RateLimitRetryMax int

	// Cache is the response cache backend. Defaults to an unbounded
	// in-memory cache; use NewNoOpCache to disable caching entirely.
	Cache Cache

	// CacheTTL is the default time-to-live of cached GET responses.
	CacheTTL time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool

	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
