package client_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/internal/client"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func TestBranchesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects/123/repository/branches", request.URL.Path)
		assert.Equal(t, "feature", request.URL.Query().Get("search"))

		_ = json.NewEncoder(writer).Encode([]gitlab.Branch{
			{Name: "feature/login"},
			{Name: "feature/signup"},
		})
	}))
	defer server.Close()

	branches := client.NewBranchesClient(newTestClient(server.URL))

	result, err := branches.List(context.Background(), "123", &gitlab.ListBranchesOptions{Search: "feature"})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "feature/login", result[0].Name)
}

func TestBranchesClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		// Branch names escape into a single segment.
		assert.Equal(t, "/projects/1/repository/branches/feature%2Flogin", request.URL.EscapedPath())

		_ = json.NewEncoder(writer).Encode(gitlab.Branch{
			Name:   "feature/login",
			Commit: &gitlab.Commit{ID: "abc123"},
		})
	}))
	defer server.Close()

	branches := client.NewBranchesClient(newTestClient(server.URL))

	branch, err := branches.Get(context.Background(), "1", "feature/login")
	require.NoError(t, err)
	assert.Equal(t, "feature/login", branch.Name)
	require.NotNil(t, branch.Commit)
	assert.Equal(t, "abc123", branch.Commit.ID)
}

func TestBranchesClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/projects/1/repository/branches", request.URL.Path)

		var body gitlab.CreateBranchRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "feature/login", body.Branch)
		assert.Equal(t, "main", body.Ref)

		writer.WriteHeader(nethttp.StatusCreated)
		_ = json.NewEncoder(writer).Encode(gitlab.Branch{Name: "feature/login"})
	}))
	defer server.Close()

	branches := client.NewBranchesClient(newTestClient(server.URL))

	branch, err := branches.Create(context.Background(), "1", "feature/login", "main")
	require.NoError(t, err)
	assert.Equal(t, "feature/login", branch.Name)
}

func TestBranchesClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "DELETE", request.Method)
		assert.Equal(t, "/projects/1/repository/branches/feature%2Flogin", request.URL.EscapedPath())

		writer.WriteHeader(nethttp.StatusNoContent)
	}))
	defer server.Close()

	branches := client.NewBranchesClient(newTestClient(server.URL))

	err := branches.Delete(context.Background(), "1", "feature/login")
	require.NoError(t, err)
}

func TestBranchesClient_Delete_Protected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		writer.WriteHeader(nethttp.StatusForbidden)
		_ = json.NewEncoder(writer).Encode(map[string]string{"message": "403 Forbidden"})
	}))
	defer server.Close()

	branches := client.NewBranchesClient(newTestClient(server.URL))

	err := branches.Delete(context.Background(), "1", "main")
	require.Error(t, err)
	assert.True(t, gitlab.IsForbidden(err))
}
