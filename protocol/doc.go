// Package protocol
//
// Implements the minimal request/response wire format for httpool.
//
// A request is the first line of the stream only, METHOD SP TARGET SP
// PROTOCOL, consumed with a single bounded read. A response is a status
// line, a blank-line separator, and the raw payload. Headers, bodies,
// keep-alive and chunked transfer are out of scope.
package protocol
