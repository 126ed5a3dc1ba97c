// Package apperr defines the error taxonomy shared by the service layer.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound marks an unresolved slug, username or post id.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks rejected user input; no mutation has happened.
	ErrValidation = errors.New("validation failed")
	// ErrPermissionDenied marks a write attempt by a non-owner.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnauthenticated marks a write attempt without a caller identity.
	ErrUnauthenticated = errors.New("authentication required")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// FieldErrors carries per-field validation messages. It unwraps to
// ErrValidation so callers can match the whole class with errors.Is.
type FieldErrors map[string]string

// Error implements the error interface
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap makes errors.Is(err, ErrValidation) hold for field errors
func (e FieldErrors) Unwrap() error {
	return ErrValidation
}
