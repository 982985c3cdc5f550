// File: server/types.go
// License: Apache-2.0

package server

import (
	"runtime"

	"github.com/httpool/httpool/protocol"
)

// Config holds all server-side configuration parameters.
type Config struct {
	ListenAddr     string // TCP bind address, e.g. "127.0.0.1:8080"
	Workers        int    // pool size; <= 0 means runtime.NumCPU()
	ReadBufferSize int    // bound on the single request read
	ReuseAddr      bool   // set SO_REUSEADDR before bind
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     "127.0.0.1:8080",
		Workers:        runtime.NumCPU(),
		ReadBufferSize: protocol.DefaultReadBufferSize,
		ReuseAddr:      false,
	}
}

// Handler answers a request matched by a route pattern. captures holds the
// pattern's submatches (index 0 is the full match). Returning nil means
// close without writing.
type Handler func(req *protocol.Request, captures []string) *protocol.Response

// DefaultHandler answers a request no pattern matched. Returning nil means
// close without writing.
type DefaultHandler func(req *protocol.Request) *protocol.Response

// ErrorHandler observes transport and parse failures. It cannot affect the
// response; the connection is closed regardless.
type ErrorHandler func(err error)
