// Package cnapi is the client for the Compute Node API.
package cnapi
