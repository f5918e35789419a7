package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrStorage       = errors.New("storage error")
)

// Stable machine-readable codes returned to API clients.
const (
	CodeTitleRequired      = "title-required"
	CodeInvalidCompletedAt = "invalid-completed-at"
	CodeInvalidID          = "invalid-id"
	CodeInvalidBody        = "invalid-body"
	CodeNotFound           = "not-found"
)

// ValidationError reports caller-supplied data that failed a rule.
// Code is one of the Code* constants and is what clients see.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Code)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, code string) *ValidationError {
	return &ValidationError{Field: field, Code: code}
}

// ValidationCode extracts the client-facing code from err.
// Returns "" and false if err carries no *ValidationError.
func ValidationCode(err error) (string, bool) {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return "", false
	}
	return ve.Code, true
}
