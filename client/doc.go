// Package client is the entry point for talking to a Triton
// datacenter.
//
// A Client owns the discovery cache, the retry executor and the HTTP
// transport. Service packages (vmapi, cnapi, ...) layer typed APIs on
// top of Client.Do; Execute is the escape hatch for arbitrary
// per-endpoint operations. Configuration is validated once, in New;
// a Client is safe for concurrent use.
package client
