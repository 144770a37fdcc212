package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// CommitsClient implements gitlab.CommitsClient.
type CommitsClient struct {
	httpClient *http.Client
}

// NewCommitsClient creates a new commits client.
func NewCommitsClient(httpClient *http.Client) *CommitsClient {
	return &CommitsClient{httpClient: httpClient}
}

// List implements gitlab.CommitsClient.List.
func (c *CommitsClient) List(ctx context.Context, projectID string, params *gitlab.ListCommitsOptions, opts ...gitlab.RequestOption) ([]gitlab.Commit, error) {
	path := fmt.Sprintf("/projects/%s/repository/commits", url.PathEscape(projectID))

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}

	var commits []gitlab.Commit

	err = decodeResponse(resp, &commits)
	if err != nil {
		return nil, fmt.Errorf("parsing commits list response: %w", err)
	}

	return commits, nil
}

// Get implements gitlab.CommitsClient.Get.
func (c *CommitsClient) Get(ctx context.Context, projectID, sha string, opts ...gitlab.RequestOption) (*gitlab.Commit, error) {
	path := fmt.Sprintf("/projects/%s/repository/commits/%s", url.PathEscape(projectID), url.PathEscape(sha))

	resp, err := c.httpClient.Get(ctx, path, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting commit: %w", err)
	}

	var commit gitlab.Commit

	err = decodeResponse(resp, &commit)
	if err != nil {
		return nil, fmt.Errorf("parsing commit response: %w", err)
	}

	return &commit, nil
}

// GetDiff implements gitlab.CommitsClient.GetDiff.
func (c *CommitsClient) GetDiff(ctx context.Context, projectID, sha string, opts ...gitlab.RequestOption) ([]gitlab.Diff, error) {
	path := fmt.Sprintf("/projects/%s/repository/commits/%s/diff", url.PathEscape(projectID), url.PathEscape(sha))

	resp, err := c.httpClient.Get(ctx, path, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting commit diff: %w", err)
	}

	var diffs []gitlab.Diff

	err = decodeResponse(resp, &diffs)
	if err != nil {
		return nil, fmt.Errorf("parsing commit diff response: %w", err)
	}

	return diffs, nil
}
