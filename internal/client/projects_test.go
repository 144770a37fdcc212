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

func TestProjectsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects/123", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(gitlab.Project{
			ID:                123,
			Name:              "api",
			PathWithNamespace: "group/api",
			DefaultBranch:     "main",
		})
	}))
	defer server.Close()

	projects := client.NewProjectsClient(newTestClient(server.URL))

	project, err := projects.Get(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, 123, project.ID)
	assert.Equal(t, "api", project.Name)
	assert.Equal(t, "main", project.DefaultBranch)
}

func TestProjectsClient_Get_PathIdentifierEscaped(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects/group%2Fapi", request.URL.EscapedPath())

		_ = json.NewEncoder(writer).Encode(gitlab.Project{ID: 123, PathWithNamespace: "group/api"})
	}))
	defer server.Close()

	projects := client.NewProjectsClient(newTestClient(server.URL))

	project, err := projects.Get(context.Background(), "group/api")
	require.NoError(t, err)
	assert.Equal(t, "group/api", project.PathWithNamespace)
}

func TestProjectsClient_Get_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		writer.WriteHeader(nethttp.StatusNotFound)
		_ = json.NewEncoder(writer).Encode(map[string]string{"message": "404 Project Not Found"})
	}))
	defer server.Close()

	projects := client.NewProjectsClient(newTestClient(server.URL))

	_, err := projects.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, gitlab.IsNotFound(err))
}

func TestProjectsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects", request.URL.Path)
		assert.Equal(t, "infra", request.URL.Query().Get("search"))
		assert.Equal(t, "true", request.URL.Query().Get("membership"))
		assert.Equal(t, "2", request.URL.Query().Get("page"))

		_ = json.NewEncoder(writer).Encode([]gitlab.Project{
			{ID: 1, Name: "infra-tools"},
			{ID: 2, Name: "infra-config"},
		})
	}))
	defer server.Close()

	projects := client.NewProjectsClient(newTestClient(server.URL))

	result, err := projects.List(context.Background(), &gitlab.ListProjectsOptions{
		Search:     "infra",
		Membership: true,
		Page:       2,
	})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "infra-tools", result[0].Name)
}

func TestProjectsClient_List_NilOptions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Empty(t, request.URL.RawQuery)
		_ = json.NewEncoder(writer).Encode([]gitlab.Project{})
	}))
	defer server.Close()

	projects := client.NewProjectsClient(newTestClient(server.URL))

	result, err := projects.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}
