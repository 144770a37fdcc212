// Package gitlab provides types, interfaces, and helpers for working with the
// GitLab REST API (v4).
//
// # Overview
//
// The gitlab package defines the domain types (e.g., Project, Commit, Branch,
// MergeRequest) and the interfaces for resource-oriented clients (e.g.,
// ProjectsClient, CommitsClient). A concrete implementation is provided by the
// glclient package, which wires configuration, the retrying transport,
// rate-limit tracking, and response caching. Most consumers should import
// glclient to construct a client and then interact with the resource client
// interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
//	  "github.com/fivetwenty-io/gitlab-client/pkg/glclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := glclient.New(&gitlab.Config{Token: "glpat-..."})
//	  if err != nil { log.Fatal(err) }
//
//	  commits, err := cli.Commits().List(ctx, "group/project", &gitlab.ListCommitsOptions{RefName: "main"})
//	  if err != nil { log.Fatal(err) }
//	  _ = commits
//	}
//
// # Caching
//
// GET responses are cached by default for the configured TTL (300s unless
// overridden). Cache keys derive deterministically from the endpoint path and
// sorted query parameters. Per-call behavior is controlled with request
// options:
//
//	project, err := cli.Projects().Get(ctx, "42", gitlab.WithoutCache())
//
// Backends implement the Cache interface; an in-memory store is the default,
// a NATS JetStream KV backend is available for sharing a cache across
// processes, and NewNoOpCache disables caching.
//
// # Rate limiting and retries
//
// The transport tracks the RateLimit-Remaining and RateLimit-Reset response
// headers and proactively sleeps before the server would start throttling.
// Responses with status 500, 502, 503, or 504 and connection errors are
// retried with exponential backoff; 429 responses are retried after the
// server-supplied Retry-After delay up to a configurable cap, after which a
// *RateLimitError is returned.
package gitlab
