// Package protocol
//
// Wire protocol constants and the status-text table.

package protocol

// Version is the only protocol token accepted on request lines and the one
// emitted on status lines.
const Version = "HTTP/1.1"

// DefaultReadBufferSize bounds the single request read.
const DefaultReadBufferSize = 512

// Status codes used by the library and its callers.
const (
	StatusOK                  = 200
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

// statusText maps known status codes to their reason phrase. This is a
// deliberately small table, not the full standard registry.
var statusText = map[int]string{
	StatusOK:                  "OK",
	StatusNoContent:           "NO CONTENT",
	StatusBadRequest:          "BAD REQUEST",
	StatusForbidden:           "FORBIDDEN",
	StatusNotFound:            "NOT FOUND",
	StatusInternalServerError: "INTERNAL SERVER ERROR",
}

const defaultStatusText = "UNKNOWN"

// StatusText returns the reason phrase for a status code, or "UNKNOWN" for
// any code outside the table.
func StatusText(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return defaultStatusText
}
