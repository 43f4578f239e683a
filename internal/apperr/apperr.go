// Package apperr defines the application error taxonomy shared by the
// service layer and the HTTP boundary.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind classifies an application error. The set is closed: every error the
// service layer raises carries exactly one of these.
type Kind int

const (
	// KindValidation means one or more field-level rules were violated.
	// Violations are batched, never reported one at a time.
	KindValidation Kind = iota
	// KindUnauthenticated means the caller presented no valid identity.
	KindUnauthenticated
	// KindForbidden means the caller is authenticated but does not own
	// the target entity.
	KindForbidden
	// KindNotFound means the referenced entity does not exist.
	KindNotFound
	// KindConflict means a unique field (email) is already taken.
	KindConflict
	// KindUnexpected means a storage or infrastructure failure.
	KindUnexpected
)

// FieldError is a single field-level violation message.
type FieldError struct {
	Message string `json:"message"`
}

// Error is the closed tagged error type. Fields is populated only for
// KindValidation; cause only for KindUnexpected.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error kind to the status code surfaced to clients.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a batched validation error carrying every violation.
func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Fields: fields}
}

// Unauthenticated returns the error for callers with no valid identity or
// failed credentials.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden returns the error for callers who lack rights over the target.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound returns the error for a missing entity.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict returns the error for a duplicate unique field.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Unexpected wraps a storage or infrastructure failure.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "internal server error", cause: err}
}
