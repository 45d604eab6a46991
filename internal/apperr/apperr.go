// Package apperr carries the service error taxonomy and its HTTP mapping.
// Every failure is terminal for its request; handlers convert whatever
// bubbles up into one structured JSON error body.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for transport mapping.
type Kind int

const (
	// Validation is malformed or disallowed input.
	Validation Kind = iota + 1
	// Auth is a missing or mismatching bearer token.
	Auth
	// EmptyResult is a query that succeeded with zero rows where the
	// renderer needs at least one.
	EmptyResult
	// Database is a connection or query execution failure.
	Database
	// Render is a failure while producing PDF or HTML bytes.
	Render
)

// Error is a classified failure with a user-visible message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a plain message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the Kind from an error chain; unknown errors report 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Status maps an error to its HTTP status. Unclassified errors are treated
// as internal failures.
func Status(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case EmptyResult:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
