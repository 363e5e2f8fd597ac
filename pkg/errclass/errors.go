// Package errclass defines stable, machine-readable error classes shared by
// the decoder, the export pipeline and the CLI.
package errclass

import (
	"errors"
	"fmt"
)

// Error is a classified error. Two errors match under errors.Is when their
// codes are equal, regardless of message or cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Code
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

func (e *Error) Unwrap() error { return e.Cause }

// WithMessage returns a new Error with the same Code but a specific message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Cause: e.Cause}
}

// WithMessagef returns a new Error with a formatted message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	return &Error{Code: e.Code, Message: fmt.Sprintf(format, args...), Cause: e.Cause}
}

// Wrap returns a new Error of the same class carrying cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Cause: cause}
}

var (
	ErrFileSizeMismatch  = &Error{Code: "E_FILE_SIZE_MISMATCH"}
	ErrInvalidLoginType  = &Error{Code: "E_INVALID_LOGIN_TYPE"}
	ErrSourceUnavailable = &Error{Code: "E_SOURCE_UNAVAILABLE"}
	ErrSinkUnavailable   = &Error{Code: "E_SINK_UNAVAILABLE"}
	ErrUsage             = &Error{Code: "E_USAGE"}
	ErrConfigInvalid     = &Error{Code: "E_CONFIG_INVALID"}
)

// Code returns the class code of err, or "" when err is not classified.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
