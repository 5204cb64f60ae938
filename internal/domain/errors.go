package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by the stores, the services and the CLI.
var (
	// ErrNotFound: no word or character is stored under the requested text.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: a unique word or character row is already stored.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation: a setting or request field was rejected.
	ErrValidation = errors.New("validation error")
	// ErrInvalidArgument: a pinyin mode, item type or output format is unknown.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedBackend: store.backend names no known store.
	ErrUnsupportedBackend = errors.New("unsupported store backend")
)

// FieldError is one rejected field, named by its config key or request
// parameter.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every rejected field of a config or request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
