// Package services defines the business logic for job applications. This file
// centralizes common service-level error values and the validation error type
// so they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated is returned when an operation is attempted without a
	// resolved identity. It is uniform regardless of the underlying cause.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrApplicationNotFound indicates that the requested application does
	// not exist or is not accessible to the current user. The two cases are
	// deliberately indistinguishable.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrEmptyUpdate is returned when an update request sets no fields.
	ErrEmptyUpdate = errors.New("update must set at least one field")
)

// ValidationError reports one or more invalid input fields. Fields maps a
// field name (JSON key) to a human-readable message so callers can render
// per-field errors.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface with a deterministic summary.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
