// Package api
// License: Apache-2.0
//
// Common error types shared across the httpool library.

package api

import "fmt"

// ErrorCode classifies a failure routed through the server's error handler.
type ErrorCode int

const (
	ErrCodeOK         ErrorCode = iota
	ErrCodeBind                 // listener could not be bound at startup
	ErrCodeIO                   // transport read/write/accept failure
	ErrCodeParse                // malformed request line or protocol mismatch
	ErrCodeSubmission           // job could not be queued on the pool
	ErrCodeInternal
)

// Error is a structured error with a code and key/value context.
// Context carries observability data (connection id, remote address,
// worker id) for the error-handler sink.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapError creates a structured error around an underlying cause.
func WrapError(code ErrorCode, message string, err error) *Error {
	e := NewError(code, message)
	e.Err = err
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
