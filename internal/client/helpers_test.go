package client_test

import (
	"time"

	internalhttp "github.com/fivetwenty-io/gitlab-client/internal/http"
)

// newTestClient builds a transport client with fast retry timings pointed at a
// test server.
func newTestClient(serverURL string) *internalhttp.Client {
	return newTestClientWithToken(serverURL, "")
}

func newTestClientWithToken(serverURL, token string) *internalhttp.Client {
	return internalhttp.NewClient(serverURL, token,
		internalhttp.WithRetryConfig(1, 10*time.Millisecond, 50*time.Millisecond),
		internalhttp.WithBackoffFactor(0.01))
}
