// Package resilience wraps outbound operations with endpoint resolution
// and exponential-backoff retry.
//
// BackoffPolicy is a pure mapping from attempt number to wait duration.
// Executor drives the retry loop: each attempt re-resolves the endpoint
// through the discovery cache, so a retry after a failure can land on a
// different instance once the registry flags the failing one. Failures
// are classified through the errors package Retryable flag; non-retryable
// failures surface immediately with no backoff.
package resilience
