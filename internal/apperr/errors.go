// Package apperr defines the typed errors services return to the transport layer.
// Each error carries the HTTP status and the client-facing message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindAuth         Kind = "auth"
	KindMissingToken Kind = "missing_token"
	KindInvalidToken Kind = "invalid_token"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindInternal     Kind = "internal"
)

// Error is a client-facing error with an HTTP status.
type Error struct {
	Kind     Kind
	HTTPCode int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind so callers can compare against constructors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newError(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, HTTPCode: code, Message: message}
}

// NewErrMissingFields is returned when required input is absent.
func NewErrMissingFields() *Error {
	return newError(KindValidation, http.StatusBadRequest, "All fields are required")
}

// NewErrInvalidEmail is returned for malformed email addresses.
func NewErrInvalidEmail() *Error {
	return newError(KindValidation, http.StatusBadRequest, "Invalid email format")
}

// NewErrInvalidRole is returned for roles outside the known set.
func NewErrInvalidRole(role string) *Error {
	e := newError(KindValidation, http.StatusBadRequest, "Invalid role")
	e.Err = fmt.Errorf("unknown role %q", role)
	return e
}

// NewErrValidation is a generic bad-input error.
func NewErrValidation(message string) *Error {
	return newError(KindValidation, http.StatusBadRequest, message)
}

// NewErrEmailIsTaken is returned when registering an email twice.
func NewErrEmailIsTaken() *Error {
	return newError(KindConflict, http.StatusBadRequest, "User already exists")
}

// NewErrInvalidCredentials is returned for any failed login.
func NewErrInvalidCredentials() *Error {
	return newError(KindAuth, http.StatusUnauthorized, "Invalid credentials")
}

// NewErrMissingAuthorizationToken is returned when no bearer token is sent.
func NewErrMissingAuthorizationToken() *Error {
	return newError(KindMissingToken, http.StatusUnauthorized, "Authentication required")
}

// NewErrInvalidAuthorizationToken is returned when a token fails verification.
func NewErrInvalidAuthorizationToken() *Error {
	return newError(KindInvalidToken, http.StatusForbidden, "Invalid token")
}

// NewErrForbidden is returned when the caller's role lacks a capability.
func NewErrForbidden() *Error {
	return newError(KindForbidden, http.StatusForbidden, "Access denied")
}

// NewErrProjectNotFound is returned for unknown project ids.
func NewErrProjectNotFound(id string) *Error {
	e := newError(KindNotFound, http.StatusNotFound, "Project not found")
	e.Err = fmt.Errorf("project %s", id)
	return e
}

// NewErrFileNotFound is returned for unknown uploaded file names.
func NewErrFileNotFound(name string) *Error {
	e := newError(KindNotFound, http.StatusNotFound, "File not found")
	e.Err = fmt.Errorf("file %s", name)
	return e
}

// NewErrRouteNotFound is returned for unknown routes.
func NewErrRouteNotFound() *Error {
	return newError(KindNotFound, http.StatusNotFound, "Not found")
}

// NewErrInternal hides err behind a generic message.
func NewErrInternal(err error) *Error {
	e := newError(KindInternal, http.StatusInternalServerError, "Internal server error")
	e.Err = err
	return e
}
