// Package fwapi is the client for the Firewall API.
package fwapi
