// Package version exposes the SDK version, set at build time via
// -ldflags:
//
//	go build -ldflags "-X github.com/nwilkens/triton-go/version.Version=1.2.0"
package version
