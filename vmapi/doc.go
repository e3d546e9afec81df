// Package vmapi is the client for the Virtual Machine API.
//
// Mutating operations are asynchronous on the server side; they return
// a Job whose execution state can be polled through ListJobs/GetJob.
package vmapi
