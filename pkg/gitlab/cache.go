package gitlab

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// CacheEntry is an immutable snapshot of a cached API response. Once stored,
// its fields are never mutated; expiry is enforced lazily on lookup.
type CacheEntry struct {
	// Data is the raw response body.
	Data []byte
	// StatusCode is the HTTP status of the cached response.
	StatusCode int
	// Headers are the response headers at the time of caching.
	Headers http.Header
	// CreatedAt is when the entry was stored.
	CreatedAt time.Time
	// ExpiresAt is when the entry becomes stale.
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry instant.
func (e *CacheEntry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Cache is the interface for response cache backends.
type Cache interface {
	// Get retrieves an entry. Expired entries are evicted on lookup and
	// reported as ErrCacheEntryExpired; absent keys as ErrCacheKeyNotFound.
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores an entry, unconditionally overwriting any existing one.
	Set(ctx context.Context, key string, entry *CacheEntry) error

	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Has checks whether a non-expired entry exists for the key.
	Has(ctx context.Context, key string) bool
}

// CacheKey derives the deterministic cache key for an endpoint path and
// optional query parameters. The key is the path alone when no parameters are
// given; otherwise the path followed by "?" and "key=value" pairs joined with
// "&", sorted lexicographically by key so that parameter order never affects
// the result.
func CacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}

	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var builder strings.Builder

	builder.WriteString(path)
	builder.WriteByte('?')

	for i, key := range keys {
		for j, value := range query[key] {
			if i > 0 || j > 0 {
				builder.WriteByte('&')
			}

			builder.WriteString(key)
			builder.WriteByte('=')
			builder.WriteString(value)
		}
	}

	return builder.String()
}

// MemoryCache is an in-memory cache backend with lazy TTL eviction.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a new in-memory cache. A maxSize of 0 means
// unbounded.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves an entry, evicting it first if it has expired.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheKeyNotFound
	}

	if entry.Expired() {
		delete(c.entries, key)

		return nil, ErrCacheEntryExpired
	}

	return entry, nil
}

// Set stores an entry, overwriting any existing entry for the key.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		if _, exists := c.entries[key]; !exists {
			c.evictLocked()
		}
	}

	c.entries[key] = entry

	return nil
}

// evictLocked frees one slot, preferring expired entries. Callers must hold
// the write lock.
func (c *MemoryCache) evictLocked() {
	for key, entry := range c.entries {
		if entry.Expired() {
			delete(c.entries, key)

			return
		}
	}

	for key := range c.entries {
		delete(c.entries, key)

		return
	}
}

// Delete removes a single entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has checks whether a non-expired entry exists for the key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]

	return ok && !entry.Expired()
}

// NoOpCache is a cache that does nothing (no caching).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always reports a miss.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}
