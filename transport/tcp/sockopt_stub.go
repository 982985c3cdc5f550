//go:build !linux

// License: Apache-2.0
//
// No-op socket option stub for platforms without SO_REUSEADDR handling.

package tcp

import "syscall"

func reuseAddrControl(network, address string, c syscall.RawConn) error {
	return nil
}
