// Package errors provides the error types surfaced by the reconciliation engine.
// Only configuration problems are errors: a missing match, a missing field or a
// type mismatch between field values is reported as data, never as an error.
package errors

import (
	"errors"
	"fmt"
)

// New is the standard library errors.New.
var New = errors.New

var (
	// ErrInvalidInput indicates that a configuration or registration was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates that a named algorithm or model is not registered.
	ErrNotFound = errors.New("not found")
)

// ValidationError is the single domain error kind of the engine.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NotFoundError reports a lookup of an unregistered algorithm or model.
// It is also a validation failure, since it can only come from configuration.
type NotFoundError struct {
	Resource string
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q is not registered", e.Resource, e.Name)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == ErrInvalidInput
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, name string) *NotFoundError {
	return &NotFoundError{Resource: resource, Name: name}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// As is the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is the standard library errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
