// Package logger provides structured logging for the client stack,
// wrapping rs/zerolog. Each subsystem obtains a component-tagged child
// logger; construction is explicit and there is no ambient global.
package logger
