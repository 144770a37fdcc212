package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// RepositoriesClient implements gitlab.RepositoriesClient.
type RepositoriesClient struct {
	httpClient *http.Client
}

// NewRepositoriesClient creates a new repositories client.
func NewRepositoriesClient(httpClient *http.Client) *RepositoriesClient {
	return &RepositoriesClient{httpClient: httpClient}
}

// ListTree implements gitlab.RepositoriesClient.ListTree. The tree path is a
// query parameter and is not path-escaped.
func (c *RepositoriesClient) ListTree(ctx context.Context, projectID string, params *gitlab.ListTreeOptions, opts ...gitlab.RequestOption) ([]gitlab.TreeEntry, error) {
	path := fmt.Sprintf("/projects/%s/repository/tree", url.PathEscape(projectID))

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing repository tree: %w", err)
	}

	var entries []gitlab.TreeEntry

	err = decodeResponse(resp, &entries)
	if err != nil {
		return nil, fmt.Errorf("parsing repository tree response: %w", err)
	}

	return entries, nil
}

// GetFile implements gitlab.RepositoriesClient.GetFile. The file path is
// escaped into a single URL segment ("src/main.go" becomes "src%2Fmain.go").
func (c *RepositoriesClient) GetFile(ctx context.Context, projectID, filePath, ref string, opts ...gitlab.RequestOption) (*gitlab.File, error) {
	path := fmt.Sprintf("/projects/%s/repository/files/%s", url.PathEscape(projectID), url.PathEscape(filePath))

	query := url.Values{}
	if ref != "" {
		query.Set("ref", ref)
	}

	resp, err := c.httpClient.Get(ctx, path, query, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting file: %w", err)
	}

	var file gitlab.File

	err = decodeResponse(resp, &file)
	if err != nil {
		return nil, fmt.Errorf("parsing file response: %w", err)
	}

	return &file, nil
}

// GetRawFile implements gitlab.RepositoriesClient.GetRawFile. The response
// body is returned verbatim without JSON decoding.
func (c *RepositoriesClient) GetRawFile(ctx context.Context, projectID, filePath, ref string, opts ...gitlab.RequestOption) ([]byte, error) {
	path := fmt.Sprintf("/projects/%s/repository/files/%s/raw", url.PathEscape(projectID), url.PathEscape(filePath))

	query := url.Values{}
	if ref != "" {
		query.Set("ref", ref)
	}

	resp, err := c.httpClient.Get(ctx, path, query, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting raw file: %w", err)
	}

	return resp.Body, nil
}
