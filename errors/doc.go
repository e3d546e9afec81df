// Package errors provides the error taxonomy shared by every service
// client in this module. Errors carry a machine-readable code, a
// retryable flag consumed by the retry executor, and the HTTP status of
// the failing response when one exists. All failures are returned as
// typed values; nothing in this module terminates the process.
package errors
