package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// MergeRequestsClient implements gitlab.MergeRequestsClient.
type MergeRequestsClient struct {
	httpClient *http.Client
}

// NewMergeRequestsClient creates a new merge requests client.
func NewMergeRequestsClient(httpClient *http.Client) *MergeRequestsClient {
	return &MergeRequestsClient{httpClient: httpClient}
}

// List implements gitlab.MergeRequestsClient.List.
func (c *MergeRequestsClient) List(ctx context.Context, projectID string, params *gitlab.ListMergeRequestsOptions, opts ...gitlab.RequestOption) ([]gitlab.MergeRequest, error) {
	path := fmt.Sprintf("/projects/%s/merge_requests", url.PathEscape(projectID))

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing merge requests: %w", err)
	}

	var mergeRequests []gitlab.MergeRequest

	err = decodeResponse(resp, &mergeRequests)
	if err != nil {
		return nil, fmt.Errorf("parsing merge requests list response: %w", err)
	}

	return mergeRequests, nil
}

// Get implements gitlab.MergeRequestsClient.Get.
func (c *MergeRequestsClient) Get(ctx context.Context, projectID string, iid int, opts ...gitlab.RequestOption) (*gitlab.MergeRequest, error) {
	path := fmt.Sprintf("/projects/%s/merge_requests/%s", url.PathEscape(projectID), strconv.Itoa(iid))

	resp, err := c.httpClient.Get(ctx, path, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting merge request: %w", err)
	}

	var mergeRequest gitlab.MergeRequest

	err = decodeResponse(resp, &mergeRequest)
	if err != nil {
		return nil, fmt.Errorf("parsing merge request response: %w", err)
	}

	return &mergeRequest, nil
}

// Create implements gitlab.MergeRequestsClient.Create.
func (c *MergeRequestsClient) Create(ctx context.Context, projectID string, request *gitlab.CreateMergeRequestRequest) (*gitlab.MergeRequest, error) {
	path := fmt.Sprintf("/projects/%s/merge_requests", url.PathEscape(projectID))

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating merge request: %w", err)
	}

	var mergeRequest gitlab.MergeRequest

	err = decodeResponse(resp, &mergeRequest)
	if err != nil {
		return nil, fmt.Errorf("parsing merge request response: %w", err)
	}

	return &mergeRequest, nil
}
