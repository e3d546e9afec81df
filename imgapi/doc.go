// Package imgapi is the client for the Image API.
package imgapi
