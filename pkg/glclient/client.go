// Package glclient provides the main entry point for creating GitLab API
// clients.
package glclient

import (
	"strings"

	"github.com/fivetwenty-io/gitlab-client/internal/client"
	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// New creates a new GitLab API client. The base URL defaults to the public
// gitlab.com API root and is normalized by trimming a trailing slash and
// adding "https://" when no scheme is present.
//
// Construct the client once at process startup and pass it to call sites;
// the client owns its cache and rate-limit state.
func New(config *gitlab.Config) (gitlab.Client, error) {
	if config == nil {
		return nil, gitlab.ErrConfigRequired
	}

	config.BaseURL = normalizeBaseURL(config.BaseURL)

	return client.New(config)
}

// NewWithToken creates a new client for a base URL and access token. An empty
// base URL selects the public gitlab.com API.
func NewWithToken(baseURL, token string) (gitlab.Client, error) {
	return New(&gitlab.Config{
		BaseURL: baseURL,
		Token:   token,
	})
}

// NewWithEndpoint creates a new unauthenticated client for a base URL.
func NewWithEndpoint(baseURL string) (gitlab.Client, error) {
	return New(&gitlab.Config{
		BaseURL: baseURL,
	})
}

func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
