package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "with field and value",
			err: &ValidationError{
				Field:   "business_id",
				Value:   "2464491-8",
				Message: "incorrect check digit",
			},
			expected: "validation failed for business_id=\"2464491-8\": incorrect check digit",
		},
		{
			name: "with field only",
			err: &ValidationError{
				Field:   "ssn",
				Message: "must be 11 characters",
			},
			expected: "validation failed for ssn: must be 11 characters",
		},
		{
			name: "message only",
			err: &ValidationError{
				Message: "invalid input",
			},
			expected: "validation failed: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("input", "", "is required")

	if err.Field != "input" {
		t.Errorf("Field = %q, want %q", err.Field, "input")
	}
	if err.Value != "" {
		t.Errorf("Value = %q, want empty", err.Value)
	}
	if err.Reason != "" {
		t.Errorf("Reason = %q, want empty", err.Reason)
	}
	if err.Message != "is required" {
		t.Errorf("Message = %q, want %q", err.Message, "is required")
	}
}

func TestNewRejection(t *testing.T) {
	err := NewRejection("business_id", "1111111-0", ReasonUnassignable, "no valid check digit exists")

	if err.Reason != ReasonUnassignable {
		t.Errorf("Reason = %q, want %q", err.Reason, ReasonUnassignable)
	}
	if err.Value != "1111111-0" {
		t.Errorf("Value = %q, want %q", err.Value, "1111111-0")
	}
}

func TestIsValidation(t *testing.T) {
	validationErr := &ValidationError{Message: "test"}
	wrapped := fmt.Errorf("tool failed: %w", validationErr)
	plainErr := errors.New("plain error")

	if !IsValidation(validationErr) {
		t.Error("IsValidation should return true for ValidationError")
	}
	if !IsValidation(wrapped) {
		t.Error("IsValidation should return true for wrapped ValidationError")
	}
	if IsValidation(plainErr) {
		t.Error("IsValidation should return false for plain error")
	}
	if IsValidation(nil) {
		t.Error("IsValidation should return false for nil")
	}
}

func TestReasonOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ""},
		{"rejection", NewRejection("ssn", "", ReasonDate, "not a calendar date"), ReasonDate},
		{"wrapped", fmt.Errorf("ctx: %w", NewRejection("ssn", "", ReasonCentury, "bad marker")), ReasonCentury},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReasonOf(tt.err); got != tt.want {
				t.Errorf("ReasonOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
