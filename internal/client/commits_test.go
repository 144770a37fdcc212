package client_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/internal/client"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func TestCommitsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects/123/repository/commits", request.URL.Path)
		assert.Equal(t, "main", request.URL.Query().Get("ref_name"))
		assert.Equal(t, "2024-01-01T00:00:00Z", request.URL.Query().Get("since"))
		assert.Equal(t, "2024-02-01T00:00:00Z", request.URL.Query().Get("until"))

		_ = json.NewEncoder(writer).Encode([]gitlab.Commit{
			{ID: "abc123", ShortID: "abc123", Title: "Fix retry backoff"},
			{ID: "def456", Title: "Add branch listing"},
		})
	}))
	defer server.Close()

	commits := client.NewCommitsClient(newTestClient(server.URL))

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	result, err := commits.List(context.Background(), "123", &gitlab.ListCommitsOptions{
		RefName: "main",
		Since:   &since,
		Until:   &until,
	})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Fix retry backoff", result[0].Title)
}

func TestCommitsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects/1/repository/commits/abc123", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(gitlab.Commit{
			ID:         "abc123",
			Title:      "Fix retry backoff",
			AuthorName: "Jordan Smith",
			Stats:      &gitlab.CommitStats{Additions: 10, Deletions: 2, Total: 12},
		})
	}))
	defer server.Close()

	commits := client.NewCommitsClient(newTestClient(server.URL))

	commit, err := commits.Get(context.Background(), "1", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", commit.ID)
	require.NotNil(t, commit.Stats)
	assert.Equal(t, 12, commit.Stats.Total)
}

func TestCommitsClient_GetDiff(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/projects/1/repository/commits/abc123/diff", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]gitlab.Diff{
			{OldPath: "main.go", NewPath: "main.go", Diff: "@@ -1 +1 @@"},
			{NewPath: "handler.go", NewFile: true},
		})
	}))
	defer server.Close()

	commits := client.NewCommitsClient(newTestClient(server.URL))

	diffs, err := commits.GetDiff(context.Background(), "1", "abc123")
	require.NoError(t, err)
	require.Len(t, diffs, 2)
	assert.True(t, diffs[1].NewFile)
}
