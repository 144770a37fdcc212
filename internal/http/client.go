// Package http implements the retrying transport and request dispatcher used
// by the resource clients. It layers response caching, proactive rate-limit
// avoidance, connection-level retries, and 429 handling around plain REST
// calls.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	nethttp "net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// Logger interface for transport logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents a single logical API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// UseCache enables the response cache for this request. Only honored
	// for GET.
	UseCache bool

	// CacheTTL overrides the client default TTL when positive.
	CacheTTL time.Duration
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client dispatches logical requests over a retrying transport.
type Client struct {
	baseURL           string
	token             string
	userAgent         string
	httpClient        *retryablehttp.Client
	cache             gitlab.Cache
	cacheTTL          time.Duration
	tracker           *RateLimitTracker
	rateLimitRetryMax int
	backoffFactor     float64
	logger            Logger
	debug             bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each individual HTTP call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig tunes connection-level retries.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithBackoffFactor sets the base multiplier, in seconds, of the exponential
// connection-level backoff.
func WithBackoffFactor(factor float64) Option {
	return func(c *Client) {
		c.backoffFactor = factor
	}
}

// WithCache sets the response cache backend.
func WithCache(cache gitlab.Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithCacheTTL sets the default TTL for cached GET responses.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// WithRateLimitRetryMax caps dispatcher-level 429 retries.
func WithRateLimitRetryMax(max int) Option {
	return func(c *Client) {
		c.rateLimitRetryMax = max
	}
}

// NewClient creates a new transport client. An empty token sends requests
// unauthenticated.
func NewClient(baseURL, token string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.CheckRetry = retryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:           baseURL,
		token:             token,
		userAgent:         constants.DefaultUserAgent,
		httpClient:        retryClient,
		cache:             gitlab.NewMemoryCache(0),
		cacheTTL:          constants.DefaultCacheTTL,
		tracker:           NewRateLimitTracker(),
		rateLimitRetryMax: constants.DefaultRateLimitRetryMax,
		backoffFactor:     constants.DefaultBackoffFactor,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.Backoff = exponentialBackoff(client.backoffFactor)

	return client
}

// HasToken reports whether an access token is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Cache returns the response cache backend.
func (c *Client) Cache() gitlab.Cache {
	return c.cache
}

// retryPolicy retries connection errors and retryable 5xx statuses. 429 is
// deliberately excluded: the dispatcher owns Retry-After handling.
func retryPolicy(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	return isRetryableStatus(resp.StatusCode), nil
}

func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case nethttp.StatusInternalServerError,
		nethttp.StatusBadGateway,
		nethttp.StatusServiceUnavailable,
		nethttp.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// exponentialBackoff waits factor * 2^attempt seconds, clamped to the
// configured bounds.
func exponentialBackoff(factor float64) retryablehttp.Backoff {
	return func(minWait, maxWait time.Duration, attemptNum int, resp *nethttp.Response) time.Duration {
		wait := time.Duration(factor * math.Pow(2, float64(attemptNum)) * float64(time.Second))
		if wait < minWait {
			return minWait
		}

		if wait > maxWait {
			return maxWait
		}

		return wait
	}
}

// Do dispatches a logical request: cache lookup, proactive rate-limit wait,
// HTTP call with connection-level retries, 429 handling, error mapping, and
// cache write-back.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	key := gitlab.CacheKey(req.Path, req.Query)
	useCache := req.Method == nethttp.MethodGet && req.UseCache && c.cache != nil

	if useCache {
		entry, err := c.cache.Get(ctx, key)
		if err == nil {
			c.logDebug("cache hit", map[string]interface{}{"key": key})

			return &Response{StatusCode: entry.StatusCode, Headers: entry.Headers, Body: entry.Data}, nil
		}
	}

	return c.dispatch(ctx, req, key, useCache, 0)
}

func (c *Client) dispatch(ctx context.Context, req *Request, key string, useCache bool, rateLimitAttempts int) (*Response, error) {
	if wait, ok := c.tracker.ShouldWait(); ok {
		c.logWarn("approaching rate limit, waiting for window reset", map[string]interface{}{
			"wait": wait.String(),
		})

		err := sleepContext(ctx, wait)
		if err != nil {
			return nil, err
		}

		c.tracker.Reset()
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	c.tracker.Update(resp.Headers)

	if resp.StatusCode == nethttp.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Headers)

		if rateLimitAttempts >= c.rateLimitRetryMax {
			return nil, &gitlab.RateLimitError{RetryAfter: retryAfter, Attempts: rateLimitAttempts}
		}

		c.logWarn("rate limited, retrying after server-supplied delay", map[string]interface{}{
			"retry_after": retryAfter.String(),
			"attempt":     rateLimitAttempts + 1,
		})

		err = sleepContext(ctx, retryAfter)
		if err != nil {
			return nil, err
		}

		return c.dispatch(ctx, req, key, useCache, rateLimitAttempts+1)
	}

	if resp.StatusCode >= nethttp.StatusBadRequest {
		return nil, &gitlab.APIError{
			StatusCode: resp.StatusCode,
			Message:    parseErrorMessage(resp.Body),
			Attempts:   c.attemptsFor(resp.StatusCode),
		}
	}

	if useCache {
		ttl := c.cacheTTL
		if req.CacheTTL > 0 {
			ttl = req.CacheTTL
		}

		now := time.Now()
		_ = c.cache.Set(ctx, key, &gitlab.CacheEntry{
			Data:       resp.Body,
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			CreatedAt:  now,
			ExpiresAt:  now.Add(ttl),
		})
	}

	return resp, nil
}

// send performs one HTTP call including connection-level retries.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody []byte

	if req.Body != nil {
		var err error

		rawBody, err = json.Marshal(req.Body)
		if err != nil {
			return nil, &gitlab.APIError{Message: "encoding request body", Attempts: 0, Err: err}
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, &gitlab.APIError{Message: "building request", Attempts: 0, Err: err}
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if rawBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		httpReq.Header.Set(constants.HeaderPrivateToken, c.token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug {
		c.logDebug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &gitlab.APIError{
			Message:  fmt.Sprintf("%s %s failed", req.Method, req.Path),
			Attempts: c.httpClient.RetryMax + 1,
			Err:      err,
		}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &gitlab.APIError{
			Message:  "reading response body",
			Attempts: c.httpClient.RetryMax + 1,
			Err:      err,
		}
	}

	if c.debug {
		c.logDebug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": httpResp.StatusCode,
		})
	}

	return &Response{StatusCode: httpResp.StatusCode, Headers: httpResp.Header, Body: body}, nil
}

// attemptsFor reports how many transport attempts a final status implies:
// retryable statuses have exhausted the connection-level retries by the time
// they surface.
func (c *Client) attemptsFor(statusCode int) int {
	if isRetryableStatus(statusCode) {
		return c.httpClient.RetryMax + 1
	}

	return 1
}

// Get issues a GET request with caching enabled.
func (c *Client) Get(ctx context.Context, path string, query url.Values, opts ...gitlab.RequestOption) (*Response, error) {
	options := gitlab.ApplyRequestOptions(opts)

	return c.Do(ctx, &Request{
		Method:   nethttp.MethodGet,
		Path:     path,
		Query:    query,
		UseCache: !options.SkipCache,
		CacheTTL: options.CacheTTL,
	})
}

// Post issues a POST request. Never cached.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request. Never cached.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE request. Never cached.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

// parseRetryAfter reads the Retry-After header in seconds, falling back to
// the default wait when absent or unparsable.
func parseRetryAfter(headers nethttp.Header) time.Duration {
	value := headers.Get(constants.HeaderRetryAfter)
	if value == "" {
		return constants.DefaultRetryAfter
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return constants.DefaultRetryAfter
	}

	return time.Duration(seconds) * time.Second
}

// parseErrorMessage extracts the human-readable message from a GitLab error
// body ({"message": ...} or {"error": ...}).
func parseErrorMessage(body []byte) string {
	if len(body) == 0 {
		return "request failed"
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}

	err := json.Unmarshal(body, &payload)
	if err != nil {
		return string(body)
	}

	if len(payload.Message) > 0 {
		var message string
		if json.Unmarshal(payload.Message, &message) == nil {
			return message
		}

		return string(payload.Message)
	}

	if payload.Error != "" {
		return payload.Error
	}

	return string(body)
}

func sleepContext(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func (c *Client) logWarn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}
