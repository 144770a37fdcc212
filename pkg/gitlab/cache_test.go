package gitlab_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func TestCacheKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		query    url.Values
		expected string
	}{
		{
			name:     "path only",
			path:     "/projects/123",
			query:    nil,
			expected: "/projects/123",
		},
		{
			name:     "empty query",
			path:     "/projects/123",
			query:    url.Values{},
			expected: "/projects/123",
		},
		{
			name:     "single parameter",
			path:     "/projects",
			query:    url.Values{"search": []string{"api"}},
			expected: "/projects?search=api",
		},
		{
			name: "parameters sorted by key",
			path: "/projects/1/repository/commits",
			query: url.Values{
				"until":    []string{"2024-02-01T00:00:00Z"},
				"since":    []string{"2024-01-01T00:00:00Z"},
				"ref_name": []string{"main"},
			},
			expected: "/projects/1/repository/commits?ref_name=main&since=2024-01-01T00:00:00Z&until=2024-02-01T00:00:00Z",
		},
		{
			name: "repeated keys keep value order",
			path: "/projects",
			query: url.Values{
				"b": []string{"2", "3"},
				"a": []string{"1"},
			},
			expected: "/projects?a=1&b=2&b=3",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, gitlab.CacheKey(testCase.path, testCase.query))
		})
	}
}

func TestCacheKey_OrderIndependent(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"ref_name", "main"},
		{"since", "2024-01-01T00:00:00Z"},
		{"until", "2024-02-01T00:00:00Z"},
		{"path", "docs/readme.md"},
	}

	// Build the same parameter mapping in every insertion order and require
	// identical keys.
	permutations := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1},
	}

	var keys []string

	for _, perm := range permutations {
		query := url.Values{}
		for _, index := range perm {
			query.Set(pairs[index][0], pairs[index][1])
		}

		keys = append(keys, gitlab.CacheKey("/projects/1/repository/commits", query))
	}

	for _, key := range keys[1:] {
		assert.Equal(t, keys[0], key)
	}
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewMemoryCache(0)
	ctx := context.Background()

	entry := &gitlab.CacheEntry{
		Data:       []byte(`{"id":123}`),
		StatusCode: 200,
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(1 * time.Hour),
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.StatusCode, retrieved.StatusCode)
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewMemoryCache(0)

	_, err := cache.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, gitlab.ErrCacheKeyNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewMemoryCache(0)
	ctx := context.Background()

	entry := &gitlab.CacheEntry{
		Data:      []byte("stale"),
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.ErrorIs(t, err, gitlab.ErrCacheEntryExpired)

	// Lazy eviction removed the entry entirely.
	_, err = cache.Get(ctx, "key1")
	require.ErrorIs(t, err, gitlab.ErrCacheKeyNotFound)
}

func TestMemoryCache_ExpiryInstant(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewMemoryCache(0)
	ctx := context.Background()

	entry := &gitlab.CacheEntry{
		Data:      []byte("short-lived"),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(50 * time.Millisecond),
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	_, err = cache.Get(ctx, "key1")
	require.Error(t, err)
}

func TestMemoryCache_SetOverwrites(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewMemoryCache(0)
	ctx := context.Background()

	first := &gitlab.CacheEntry{Data: []byte("first"), ExpiresAt: time.Now().Add(time.Hour)}
	second := &gitlab.CacheEntry{Data: []byte("second"), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, cache.Set(ctx, "key1", first))
	require.NoError(t, cache.Set(ctx, "key1", second))

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), retrieved.Data)
}

func TestMemoryCache_Clear(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewMemoryCache(0)
	ctx := context.Background()

	keys := []string{"a", "b", "c"}
	for _, key := range keys {
		entry := &gitlab.CacheEntry{
			Data:      []byte("data"),
			ExpiresAt: time.Now().Add(1 * time.Hour),
		}
		require.NoError(t, cache.Set(ctx, key, entry))
	}

	for _, key := range keys {
		assert.True(t, cache.Has(ctx, key))
	}

	require.NoError(t, cache.Clear(ctx))

	for _, key := range keys {
		assert.False(t, cache.Has(ctx, key))

		_, err := cache.Get(ctx, key)
		require.ErrorIs(t, err, gitlab.ErrCacheKeyNotFound)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewMemoryCache(0)
	ctx := context.Background()

	entry := &gitlab.CacheEntry{Data: []byte("data"), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, cache.Set(ctx, "key1", entry))
	assert.True(t, cache.Has(ctx, "key1"))

	require.NoError(t, cache.Delete(ctx, "key1"))
	assert.False(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_BoundedEviction(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewMemoryCache(2)
	ctx := context.Background()

	fresh := func(data string) *gitlab.CacheEntry {
		return &gitlab.CacheEntry{Data: []byte(data), ExpiresAt: time.Now().Add(time.Hour)}
	}

	require.NoError(t, cache.Set(ctx, "a", fresh("a")))
	require.NoError(t, cache.Set(ctx, "b", fresh("b")))
	require.NoError(t, cache.Set(ctx, "c", fresh("c")))

	// One of the earlier entries was evicted to make room.
	count := 0

	for _, key := range []string{"a", "b", "c"} {
		if cache.Has(ctx, key) {
			count++
		}
	}

	assert.Equal(t, 2, count)
	assert.True(t, cache.Has(ctx, "c"))
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := gitlab.NewNoOpCache()
	ctx := context.Background()

	entry := &gitlab.CacheEntry{Data: []byte("data"), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, cache.Set(ctx, "key1", entry))

	_, err := cache.Get(ctx, "key1")
	require.ErrorIs(t, err, gitlab.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key1"))
	require.NoError(t, cache.Delete(ctx, "key1"))
	require.NoError(t, cache.Clear(ctx))
}
