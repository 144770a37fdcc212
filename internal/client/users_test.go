package client_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/internal/client"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func TestUsersClient_Current(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/user", request.URL.Path)
		assert.Equal(t, "secret-token", request.Header.Get("PRIVATE-TOKEN"))

		_ = json.NewEncoder(writer).Encode(gitlab.User{ID: 42, Username: "jsmith", Name: "Jordan Smith"})
	}))
	defer server.Close()

	users := client.NewUsersClient(newTestClientWithToken(server.URL, "secret-token"))

	user, err := users.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, user.ID)
	assert.Equal(t, "jsmith", user.Username)
}

func TestUsersClient_Current_NoToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		calls.Add(1)
		writer.WriteHeader(nethttp.StatusUnauthorized)
	}))
	defer server.Close()

	users := client.NewUsersClient(newTestClient(server.URL))

	_, err := users.Current(context.Background())
	require.ErrorIs(t, err, gitlab.ErrTokenRequired)

	// The failure happens before any network call.
	assert.Equal(t, int32(0), calls.Load())
}

func TestUsersClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/users/42", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(gitlab.User{ID: 42, Username: "jsmith", State: "active"})
	}))
	defer server.Close()

	users := client.NewUsersClient(newTestClient(server.URL))

	user, err := users.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "active", user.State)
}
