package client_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/internal/client"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func TestRepositoriesClient_ListTree(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects/123/repository/tree", request.URL.Path)

		// Tree paths travel as a query parameter, slashes intact.
		assert.Equal(t, "src/app", request.URL.Query().Get("path"))
		assert.Equal(t, "develop", request.URL.Query().Get("ref"))
		assert.Equal(t, "true", request.URL.Query().Get("recursive"))

		_ = json.NewEncoder(writer).Encode([]gitlab.TreeEntry{
			{ID: "a1", Name: "main.go", Type: "blob", Path: "src/app/main.go", Mode: "100644"},
			{ID: "b2", Name: "handlers", Type: "tree", Path: "src/app/handlers", Mode: "040000"},
		})
	}))
	defer server.Close()

	repositories := client.NewRepositoriesClient(newTestClient(server.URL))

	entries, err := repositories.ListTree(context.Background(), "123", &gitlab.ListTreeOptions{
		Path:      "src/app",
		Ref:       "develop",
		Recursive: true,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "blob", entries[0].Type)
	assert.Equal(t, "tree", entries[1].Type)
}

func TestRepositoriesClient_GetFile(t *testing.T) {
	t.Parallel()

	content := base64.StdEncoding.EncodeToString([]byte("package main\n"))

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		// File paths collapse into a single escaped segment.
		assert.Equal(t, "/projects/group%2Fapi/repository/files/src%2Fmain.go", request.URL.EscapedPath())
		assert.Equal(t, "main", request.URL.Query().Get("ref"))

		_ = json.NewEncoder(writer).Encode(gitlab.File{
			FileName: "main.go",
			FilePath: "src/main.go",
			Encoding: "base64",
			Content:  content,
			Ref:      "main",
		})
	}))
	defer server.Close()

	repositories := client.NewRepositoriesClient(newTestClient(server.URL))

	file, err := repositories.GetFile(context.Background(), "group/api", "src/main.go", "main")
	require.NoError(t, err)
	assert.Equal(t, "main.go", file.FileName)

	decoded, err := file.DecodeContent()
	require.NoError(t, err)
	assert.Equal(t, []byte("package main\n"), decoded)
}

func TestRepositoriesClient_GetFile_NoRef(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Empty(t, request.URL.Query().Get("ref"))
		_ = json.NewEncoder(writer).Encode(gitlab.File{FileName: "README.md"})
	}))
	defer server.Close()

	repositories := client.NewRepositoriesClient(newTestClient(server.URL))

	file, err := repositories.GetFile(context.Background(), "1", "README.md", "")
	require.NoError(t, err)
	assert.Equal(t, "README.md", file.FileName)
}

func TestRepositoriesClient_GetRawFile(t *testing.T) {
	t.Parallel()

	raw := []byte("#!/bin/sh\nexit 0\n")

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects/1/repository/files/scripts%2Fci.sh/raw", request.URL.EscapedPath())
		assert.Equal(t, "main", request.URL.Query().Get("ref"))

		_, _ = writer.Write(raw)
	}))
	defer server.Close()

	repositories := client.NewRepositoriesClient(newTestClient(server.URL))

	body, err := repositories.GetRawFile(context.Background(), "1", "scripts/ci.sh", "main")
	require.NoError(t, err)
	assert.Equal(t, raw, body)
}
