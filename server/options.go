// File: server/options.go
// Package server defines functional options for the Server.
// License: Apache-2.0

package server

// ServerOption customizes server initialization.
type ServerOption func(*Config)

// WithWorkers sets the number of pool workers.
func WithWorkers(n int) ServerOption {
	return func(cfg *Config) {
		cfg.Workers = n
	}
}

// WithReadBufferSize overrides the request read buffer size.
func WithReadBufferSize(n int) ServerOption {
	return func(cfg *Config) {
		cfg.ReadBufferSize = n
	}
}

// WithReuseAddr enables SO_REUSEADDR on the listening socket.
func WithReuseAddr() ServerOption {
	return func(cfg *Config) {
		cfg.ReuseAddr = true
	}
}
