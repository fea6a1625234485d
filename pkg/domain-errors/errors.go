// Package domainerrors defines the coded error type services return and
// handlers translate to HTTP statuses. Codes classify the failure; the
// messages are user-facing and pass through to the response envelope
// unchanged.
package domainerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a domain failure.
type Code string

const (
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeInvalidArgument Code = "invalid_argument"
	CodeUnauthorized    Code = "unauthorized"
	CodeInternal        Code = "internal"
)

// Error carries a code and one or more user-facing messages. Validation
// failures accumulate a message per broken rule; everything else has exactly
// one.
type Error struct {
	ErrCode  Code
	Messages []string
	cause    error
}

func (e *Error) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrCode, msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrCode, msg)
}

func (e *Error) Unwrap() error { return e.cause }

// Message returns the first user-facing message.
func (e *Error) Message() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

// New builds a coded error with a single message.
func New(code Code, message string) error {
	return &Error{ErrCode: code, Messages: []string{message}}
}

// Newf is New with formatting.
func Newf(code Code, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to an underlying error while keeping the
// cause reachable through errors.Is / errors.As.
func Wrap(err error, code Code, message string) error {
	return &Error{ErrCode: code, Messages: []string{message}, cause: err}
}

// NewValidation builds an invalid-argument error carrying every failed rule.
func NewValidation(messages ...string) error {
	return &Error{ErrCode: CodeInvalidArgument, Messages: messages}
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that are not domain errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.ErrCode
	}
	return CodeInternal
}

// MessagesOf returns the user-facing messages of err, or nil for non-domain
// errors.
func MessagesOf(err error) []string {
	var de *Error
	if errors.As(err, &de) {
		return de.Messages
	}
	return nil
}
