package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nwilkens/triton-go/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an INVALID_INPUT error when any check failed.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return errors.InvalidInput(strings.Join(messages, "; "))
}

// Required checks that a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// RequiredUUID checks that a string is a valid non-nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		v.AddError(field, "is required")
		return v
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil || parsed == uuid.Nil {
		v.AddError(field, "must be a valid UUID")
	}
	return v
}

// Positive checks that an integer is greater than zero.
func (v *Validator) Positive(field string, value int) *Validator {
	if value <= 0 {
		v.AddError(field, "must be positive")
	}
	return v
}

// OneOf checks that a value is in the allowed set, ignoring empty values.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	return v
}
