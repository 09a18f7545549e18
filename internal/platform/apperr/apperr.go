// Package apperr defines the error taxonomy shared by the domain services
// and the HTTP boundary. Repositories translate storage-level failures into
// these errors so that services and handlers never inspect driver errors
// directly.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForeignKey signals that a write referenced a clinician or patient
	// id that does not exist in storage.
	ErrForeignKey = errors.New("foreign key violation")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail for malformed or out-of-range
// input. It is always recovered at the boundary into a 400 response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

// Add appends a field error and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// Invalid builds a single-field ValidationError.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsForeignKey reports whether err is (or wraps) ErrForeignKey.
func IsForeignKey(err error) bool { return errors.Is(err, ErrForeignKey) }
