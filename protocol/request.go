// File: protocol/request.go
// License: Apache-2.0
//
// Request-line reader. One bounded read, no retry-until-newline: a request
// line longer than the buffer, or split across TCP segments, is not
// guaranteed to parse. That limitation is part of the contract.

package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedRequest indicates the first line is missing a method, target
// or protocol token, or the protocol token does not match Version. Check
// with errors.Is to distinguish parse failures from transport failures.
var ErrMalformedRequest = errors.New("malformed request line")

// Method enumerates the request methods the parser recognizes.
type Method int

const (
	MethodUnknown Method = iota
	MethodGet
	MethodPost
	MethodDelete
)

// ParseMethod maps a method token to its Method. Unrecognized tokens map to
// MethodUnknown; an unknown method is not a parse failure.
func ParseMethod(s string) Method {
	switch s {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	case "DELETE":
		return MethodDelete
	default:
		return MethodUnknown
	}
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodDelete:
		return "DELETE"
	default:
		return "Unknown"
	}
}

// Request is a parsed request line. Immutable once constructed; owned by
// the worker handling its connection.
type Request struct {
	Method Method
	Target string // raw, unparsed path+query
}

// ReadRequest performs exactly one read of at most bufSize bytes from r and
// parses the first line as METHOD SP TARGET SP PROTOCOL. Anything after the
// first line within the buffer is ignored. A transport failure is returned
// wrapped; a malformed line wraps ErrMalformedRequest. A failed read never
// reaches parsing. If bufSize < 1, DefaultReadBufferSize is used.
func ReadRequest(r io.Reader, bufSize int) (*Request, error) {
	if bufSize < 1 {
		bufSize = DefaultReadBufferSize
	}
	buf := make([]byte, bufSize)
	n, err := r.Read(buf)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("read request: %w", err)
	}

	line := buf[:n]
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = bytes.TrimSuffix(line, []byte("\r"))

	fields := bytes.Split(line, []byte(" "))
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: want METHOD TARGET PROTOCOL, got %d tokens", ErrMalformedRequest, len(fields))
	}
	method, target, proto := fields[0], fields[1], fields[2]
	if len(method) == 0 || len(target) == 0 {
		return nil, fmt.Errorf("%w: empty method or target", ErrMalformedRequest)
	}
	if string(proto) != Version {
		return nil, fmt.Errorf("%w: unsupported protocol %q", ErrMalformedRequest, proto)
	}

	// Invalid byte sequences are replaced, not rejected.
	return &Request{
		Method: ParseMethod(lossyString(method)),
		Target: lossyString(target),
	}, nil
}

// lossyString converts raw bytes to text, replacing invalid UTF-8.
func lossyString(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
