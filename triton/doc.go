// Package triton defines the core domain types shared by every service
// client in this module: the set of known datacenter services, their
// default ports and timeouts, and the typed UUIDs used to address
// applications, services, and instances.
package triton
