package errors

import (
	"errors"
	"fmt"
)

// Error represents a typed client error carrying a user-displayable message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Predefined errors for the failure modes the console distinguishes.
var (
	ErrNetwork    = New("NETWORK_ERROR", "could not reach the server")
	ErrDecode     = New("DECODE_ERROR", "Invalid response format from server")
	ErrServer     = New("SERVER_ERROR", "server rejected the request")
	ErrValidation = New("VALIDATION_ERROR", "validation failed")
	ErrNotFound   = New("NOT_FOUND", "resource not found")
	ErrBusy       = New("BUSY", "another action is still in progress")
	ErrInternal   = New("INTERNAL_ERROR", "internal error")
)

// WithStatus returns a copy of the error annotated with the HTTP status the
// upstream responded with.
func WithStatus(err *Error, status int) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Status = status
	return &clone
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Display converts any error into the string shown to the operator. The
// wrapped cause is deliberately omitted; it belongs in logs, not the screen.
func Display(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).Message
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code string) bool {
	e := FromError(err)
	return e != nil && e.Code == code
}
