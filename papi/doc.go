// Package papi is the client for the Package API.
package papi
