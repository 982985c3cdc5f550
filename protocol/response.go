// File: protocol/response.go
// License: Apache-2.0
//
// Response writer. Serializes a status line, a blank-line separator and the
// raw payload. No headers are emitted, notably no Content-Length.

package protocol

import (
	"bufio"
	"fmt"
	"io"
)

// Response is a status code plus an opaque payload. A handler constructs it
// and ownership transfers fully to the writer.
type Response struct {
	StatusCode int
	Payload    []byte
}

// NewResponse creates a Response with an arbitrary status code.
func NewResponse(code int, payload []byte) *Response {
	return &Response{StatusCode: code, Payload: payload}
}

// OK creates a 200 response.
func OK(payload []byte) *Response {
	return NewResponse(StatusOK, payload)
}

// Forbidden creates a 403 response.
func Forbidden(payload []byte) *Response {
	return NewResponse(StatusForbidden, payload)
}

// NotFound creates a 404 response.
func NotFound(payload []byte) *Response {
	return NewResponse(StatusNotFound, payload)
}

// ServerError creates a 500 response.
func ServerError(payload []byte) *Response {
	return NewResponse(StatusInternalServerError, payload)
}

// WriteResponse serializes resp onto w and flushes. Partial writes before a
// failure are not rolled back; the peer may observe a truncated response.
func WriteResponse(w io.Writer, resp *Response) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s %d %s\r\n\r\n", Version, resp.StatusCode, StatusText(resp.StatusCode)); err != nil {
		return fmt.Errorf("write status line: %w", err)
	}
	if _, err := bw.Write(resp.Payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush response: %w", err)
	}
	return nil
}
