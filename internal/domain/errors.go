// File: internal/domain/errors.go
package domain

import "errors"

// Shared error taxonomy. Services return these (or wrap them) and the
// HTTP layer maps them to status codes in exactly one place.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrQuotaExceeded   = errors.New("daily usage limit exceeded")
)

// ValidationError carries per-field messages so the API can return a
// field-level error map alongside the generic message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
