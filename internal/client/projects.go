package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// ProjectsClient implements gitlab.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

// Get implements gitlab.ProjectsClient.Get. The project identifier may be a
// numeric ID or a "group/project" path; paths are escaped into a single URL
// segment.
func (c *ProjectsClient) Get(ctx context.Context, projectID string, opts ...gitlab.RequestOption) (*gitlab.Project, error) {
	path := "/projects/" + url.PathEscape(projectID)

	resp, err := c.httpClient.Get(ctx, path, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	var project gitlab.Project

	err = decodeResponse(resp, &project)
	if err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return &project, nil
}

// List implements gitlab.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, params *gitlab.ListProjectsOptions, opts ...gitlab.RequestOption) ([]gitlab.Project, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, "/projects", query, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var projects []gitlab.Project

	err = decodeResponse(resp, &projects)
	if err != nil {
		return nil, fmt.Errorf("parsing projects list response: %w", err)
	}

	return projects, nil
}
