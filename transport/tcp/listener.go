// File: transport/tcp/listener.go
// License: Apache-2.0

package tcp

import (
	"context"
	"fmt"
	"net"
)

// ListenerConfig holds configuration for the TCP listener.
type ListenerConfig struct {
	Addr      string // TCP address to bind, e.g. "127.0.0.1:8080"
	ReuseAddr bool   // set SO_REUSEADDR before bind (Linux)
}

// Listen opens the listening socket, applying socket options if requested.
func Listen(cfg ListenerConfig) (net.Listener, error) {
	lc := net.ListenConfig{}
	if cfg.ReuseAddr {
		lc.Control = reuseAddrControl
	}
	ln, err := lc.Listen(context.Background(), "tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("tcp listen %s: %w", cfg.Addr, err)
	}
	return ln, nil
}
