package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// UsersClient implements gitlab.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// Current implements gitlab.UsersClient.Current. Without a configured token
// it fails immediately, before any network call.
func (c *UsersClient) Current(ctx context.Context, opts ...gitlab.RequestOption) (*gitlab.User, error) {
	if !c.httpClient.HasToken() {
		return nil, gitlab.ErrTokenRequired
	}

	resp, err := c.httpClient.Get(ctx, "/user", nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	var user gitlab.User

	err = decodeResponse(resp, &user)
	if err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// Get implements gitlab.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID int, opts ...gitlab.RequestOption) (*gitlab.User, error) {
	path := "/users/" + strconv.Itoa(userID)

	resp, err := c.httpClient.Get(ctx, path, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user gitlab.User

	err = decodeResponse(resp, &user)
	if err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}
