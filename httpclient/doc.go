// Package httpclient is the HTTP transport under the service clients.
//
// A Client sends one request to one resolved endpoint; it carries no
// retry logic of its own. Responses with non-2xx status codes are
// classified into the shared errors taxonomy, so the resilience layer
// can decide which failures to retry (429 and 5xx) and which to
// surface immediately (other 4xx). Connection-level failures and
// deadline hits map to CONNECTION_FAILED and TIMEOUT.
package httpclient
