// Package napi is the client for the Network API.
package napi
