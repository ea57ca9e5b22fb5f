// internal/app/system/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an API-visible failure. Codes map one-to-one onto the
// error kinds the client contract names.
type Code string

const (
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInvalid      Code = "BAD_USER_INPUT"
	CodeInternal     Code = "INTERNAL"
)

// Error is a typed API error. The message is safe to show to callers;
// internal causes stay in the logs.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// Extensions lets the GraphQL layer attach the code to the formatted
// error (graphql-go picks this up structurally).
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Code)}
}

func Unauthorized(msg string) error { return &Error{Code: CodeUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Code: CodeForbidden, Message: msg} }
func NotFound(msg string) error     { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) error     { return &Error{Code: CodeConflict, Message: msg} }
func Invalid(msg string) error      { return &Error{Code: CodeInvalid, Message: msg} }

func Unauthorizedf(format string, args ...any) error {
	return Unauthorized(fmt.Sprintf(format, args...))
}
func NotFoundf(format string, args ...any) error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Internal carries a safe caller-facing message for a server-side
// failure. Callers log the original error before wrapping.
func Internal(msg string) error {
	if msg == "" {
		msg = "internal server error"
	}
	return &Error{Code: CodeInternal, Message: msg}
}

// CodeOf extracts the code from err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
