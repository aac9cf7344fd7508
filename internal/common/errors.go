// Package common defines shared error kinds and helpers used across the
// server and client layers. Callers should use errors.Is to match kinds.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level error kinds. Each maps to exactly one HTTP status.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Object storage is not configured.
	ErrStorageDisabled = errors.New("object storage disabled")
)

// Error is a classified service error. Kind is one of the sentinel kinds
// above, Msg is safe to show to API clients and Err is the underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound returns an ErrorNotFound-kind error with the given message.
func NotFound(msg string) error {
	return &Error{Kind: ErrorNotFound, Msg: msg}
}

// Validation returns an ErrorValidation-kind error with the given message.
func Validation(msg string) error {
	return &Error{Kind: ErrorValidation, Msg: msg}
}

// Unauthorized returns an ErrorUnauthorized-kind error with the given message.
func Unauthorized(msg string) error {
	return &Error{Kind: ErrorUnauthorized, Msg: msg}
}

// Internal wraps cause into an ErrorInternal-kind error, unless cause is
// already classified, in which case it is returned unchanged.
func Internal(msg string, cause error) error {
	var ce *Error
	if errors.As(cause, &ce) {
		return cause
	}
	return &Error{Kind: ErrorInternal, Msg: msg, Err: cause}
}

// Message returns the client-facing message of a classified error and
// false for anything else.
func Message(err error) (string, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Msg, true
	}
	return "", false
}
