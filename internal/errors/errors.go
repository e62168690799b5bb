// Package errors provides shared error types for Finnish identifier validation.
package errors

import (
	"errors"
	"fmt"
)

// Reason is a machine-readable rejection cause.
type Reason string

const (
	ReasonRequired       Reason = "required"
	ReasonLength         Reason = "length"
	ReasonFormat         Reason = "format"
	ReasonCentury        Reason = "century"
	ReasonDate           Reason = "date"
	ReasonSeparator      Reason = "separator"
	ReasonCheckCharacter Reason = "check_character"
	ReasonCheckDigit     Reason = "check_digit"
	ReasonUnassignable   Reason = "unassignable"
)

// ValidationError indicates an identifier or input parameter failed validation.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (empty for personal data)
	Reason  Reason // rejection cause, empty for plain argument errors
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError without a reason code.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewRejection creates a ValidationError with a reason code.
func NewRejection(field, value string, reason Reason, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Message: message,
	}
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ReasonOf extracts the rejection reason from err, or "" if there is none.
func ReasonOf(err error) Reason {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}
