// Package errs defines the error taxonomy shared by services, repositories and handlers.
//
// Every recoverable failure is an *Error carrying a Kind. Handlers never inspect messages;
// they map the Kind to an HTTP status through Status.
package errs

import (
	"errors"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindValidation
	KindAuth
	KindBadRequest
)

// Error is the application error type returned across layers.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation details keyed by the JSON field name.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindBadRequest:
		return http.StatusBadRequest
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// NotFound reports a missing record, e.g. NotFound("Item") -> "Item not found".
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Conflict reports a uniqueness violation. The message names the conflicting field.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Validation reports malformed or out-of-range input.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// FieldValidation is a shorthand for a single failing field.
func FieldValidation(field, detail string) *Error {
	return Validation("Validation failed", map[string]string{field: detail})
}

// Auth reports bad credentials or an invalid token.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// BadRequest reports a request that is well formed but not acceptable.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Is reports whether err wraps an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
