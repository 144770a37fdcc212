// Package client implements the gitlab.Client interface and the resource
// clients over the internal retrying transport.
package client

import (
	"context"
	"encoding/json"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// Client implements the gitlab.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     gitlab.Logger

	projects      gitlab.ProjectsClient
	repositories  gitlab.RepositoriesClient
	commits       gitlab.CommitsClient
	branches      gitlab.BranchesClient
	mergeRequests gitlab.MergeRequestsClient
	users         gitlab.UsersClient
}

// New creates a new GitLab API client. The config base URL must already be
// normalized; glclient.New is the supported entry point.
func New(config *gitlab.Config) (*Client, error) {
	if config == nil {
		return nil, gitlab.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, gitlab.ErrBaseURLRequired
	}

	httpClient := http.NewClient(config.BaseURL, config.Token, buildHTTPOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// buildHTTPOptions translates the public config into transport options.
func buildHTTPOptions(config *gitlab.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin <= 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	if config.BackoffFactor > 0 {
		opts = append(opts, http.WithBackoffFactor(config.BackoffFactor))
	}

	if config.RateLimitRetryMax > 0 {
		opts = append(opts, http.WithRateLimitRetryMax(config.RateLimitRetryMax))
	}

	if config.Cache != nil {
		opts = append(opts, http.WithCache(config.Cache))
	}

	if config.CacheTTL > 0 {
		opts = append(opts, http.WithCacheTTL(config.CacheTTL))
	}

	return opts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.projects = NewProjectsClient(c.httpClient)
	c.repositories = NewRepositoriesClient(c.httpClient)
	c.commits = NewCommitsClient(c.httpClient)
	c.branches = NewBranchesClient(c.httpClient)
	c.mergeRequests = NewMergeRequestsClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
}

// Projects implements gitlab.Client.Projects.
func (c *Client) Projects() gitlab.ProjectsClient {
	return c.projects
}

// Repositories implements gitlab.Client.Repositories.
func (c *Client) Repositories() gitlab.RepositoriesClient {
	return c.repositories
}

// Commits implements gitlab.Client.Commits.
func (c *Client) Commits() gitlab.CommitsClient {
	return c.commits
}

// Branches implements gitlab.Client.Branches.
func (c *Client) Branches() gitlab.BranchesClient {
	return c.branches
}

// MergeRequests implements gitlab.Client.MergeRequests.
func (c *Client) MergeRequests() gitlab.MergeRequestsClient {
	return c.mergeRequests
}

// Users implements gitlab.Client.Users.
func (c *Client) Users() gitlab.UsersClient {
	return c.users
}

// ClearCache implements gitlab.Client.ClearCache.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.httpClient.Cache().Clear(ctx)
}

// decodeResponse unmarshals a non-empty response body into v. Decode
// failures surface as *gitlab.APIError so callers see a single error kind for
// transport, status, and decode problems.
func decodeResponse(resp *http.Response, v interface{}) error {
	if len(resp.Body) == 0 {
		return nil
	}

	err := json.Unmarshal(resp.Body, v)
	if err != nil {
		return &gitlab.APIError{
			StatusCode: resp.StatusCode,
			Message:    "decoding response body",
			Attempts:   1,
			Err:        err,
		}
	}

	return nil
}

// loggerAdapter adapts gitlab.Logger to http.Logger.
type loggerAdapter struct {
	logger gitlab.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
