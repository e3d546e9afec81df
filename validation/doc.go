// Package validation checks configuration structs and request inputs
// before they reach the wire.
//
// Struct checks run off `validate` tags via go-playground/validator;
// the fluent Validator collects field errors for hand-rolled checks.
// Both report through the shared errors taxonomy as INVALID_INPUT.
package validation
