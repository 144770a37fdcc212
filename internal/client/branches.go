package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// BranchesClient implements gitlab.BranchesClient.
type BranchesClient struct {
	httpClient *http.Client
}

// NewBranchesClient creates a new branches client.
func NewBranchesClient(httpClient *http.Client) *BranchesClient {
	return &BranchesClient{httpClient: httpClient}
}

// List implements gitlab.BranchesClient.List.
func (c *BranchesClient) List(ctx context.Context, projectID string, params *gitlab.ListBranchesOptions, opts ...gitlab.RequestOption) ([]gitlab.Branch, error) {
	path := fmt.Sprintf("/projects/%s/repository/branches", url.PathEscape(projectID))

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	var branches []gitlab.Branch

	err = decodeResponse(resp, &branches)
	if err != nil {
		return nil, fmt.Errorf("parsing branches list response: %w", err)
	}

	return branches, nil
}

// Get implements gitlab.BranchesClient.Get. Branch names are escaped into a
// single URL segment ("feature/login" becomes "feature%2Flogin").
func (c *BranchesClient) Get(ctx context.Context, projectID, branch string, opts ...gitlab.RequestOption) (*gitlab.Branch, error) {
	path := fmt.Sprintf("/projects/%s/repository/branches/%s", url.PathEscape(projectID), url.PathEscape(branch))

	resp, err := c.httpClient.Get(ctx, path, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting branch: %w", err)
	}

	var result gitlab.Branch

	err = decodeResponse(resp, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing branch response: %w", err)
	}

	return &result, nil
}

// Create implements gitlab.BranchesClient.Create.
func (c *BranchesClient) Create(ctx context.Context, projectID, branch, ref string) (*gitlab.Branch, error) {
	path := fmt.Sprintf("/projects/%s/repository/branches", url.PathEscape(projectID))

	resp, err := c.httpClient.Post(ctx, path, &gitlab.CreateBranchRequest{Branch: branch, Ref: ref})
	if err != nil {
		return nil, fmt.Errorf("creating branch: %w", err)
	}

	var result gitlab.Branch

	err = decodeResponse(resp, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing branch response: %w", err)
	}

	return &result, nil
}

// Delete implements gitlab.BranchesClient.Delete.
func (c *BranchesClient) Delete(ctx context.Context, projectID, branch string) error {
	path := fmt.Sprintf("/projects/%s/repository/branches/%s", url.PathEscape(projectID), url.PathEscape(branch))

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting branch: %w", err)
	}

	return nil
}
