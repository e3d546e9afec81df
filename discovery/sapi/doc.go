// Package sapi talks to the Triton Services API and backs service
// discovery with it.
//
// SAPI models a datacenter as applications, services and instances.
// The discoverer looks up a service by name inside the "sdc"
// application, lists its instances and derives one endpoint URL per
// instance, preferring explicit URL metadata over hostname-based
// construction. Client is also usable directly for SAPI CRUD.
package sapi
