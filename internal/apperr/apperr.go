// Package apperr defines the error taxonomy shared by services and
// handlers. Errors are surfaced at the request boundary; nothing in the
// core retries, since a retried transition could be applied twice.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPermissionDenied means the actor's role does not authorize the
	// requested action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidStatusValue means the target status is not one of the
	// enumerated acquisition statuses.
	ErrInvalidStatusValue = errors.New("invalid status value")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// NotFound wraps ErrNotFound with the entity name for logs.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}
