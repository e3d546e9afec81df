// Package discovery resolves logical service names to concrete, healthy
// network endpoints.
//
// The package is built from three pieces:
//
//   - Registry: the in-memory record of known endpoints per service,
//     with advisory availability flags maintained by request outcomes.
//   - Cache: a TTL-bounded memoization layer over a pluggable Discoverer
//     backend, with hit/miss/success/failure counters and an optional
//     static fallback table.
//   - Status: an on-demand, read-only snapshot of discovery health.
//
// Staleness is detected lazily on Resolve; there are no background
// refresh goroutines. Concurrent resolves of the same expired entry may
// both hit the backend — Replace is last-writer-wins, so this costs a
// duplicate lookup, never correctness.
package discovery
