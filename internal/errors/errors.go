// Package errors defines the domain error kinds shared by every bounded context.
// Use cases return these (directly, wrapped, or as coded errors built with Define) and
// the HTTP layer maps the kind to a status code.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds. Each maps to exactly one HTTP status in httputil.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but lacks the capability.
	ErrForbidden = errors.New("forbidden")
	// ErrLocked means the moderator is temporarily locked out after failed logins.
	ErrLocked = errors.New("locked")
)

// Error is a domain error with a stable machine-readable code. It unwraps to its kind,
// so errors.Is matches both the specific error and the kind.
type Error struct {
	Code    string
	Message string
	kind    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.kind }

// Define creates a coded domain error of the given kind.
func Define(kind error, code, message string) *Error {
	return &Error{Code: code, Message: message, kind: kind}
}

// CodeOf returns the code of the first coded error in err's chain, or "" if none.
func CodeOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to err while keeping it matchable. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
