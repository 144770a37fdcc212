package gitlab

import "time"

// RequestOptions carries per-call behavior shared by all read methods.
type RequestOptions struct {
	// SkipCache bypasses the response cache for this call.
	SkipCache bool

	// CacheTTL overrides the client default TTL for this call.
	CacheTTL time.Duration
}

// RequestOption mutates per-call request options.
type RequestOption func(*RequestOptions)

// WithoutCache disables the response cache for a single call.
func WithoutCache() RequestOption {
	return func(o *RequestOptions) {
		o.SkipCache = true
	}
}

// WithCacheTTL overrides the cache TTL for a single call.
func WithCacheTTL(ttl time.Duration) RequestOption {
	return func(o *RequestOptions) {
		o.CacheTTL = ttl
	}
}

// ApplyRequestOptions folds a list of options into a RequestOptions value.
func ApplyRequestOptions(opts []RequestOption) *RequestOptions {
	options := &RequestOptions{}

	for _, opt := range opts {
		opt(options)
	}

	return options
}
