// License: Apache-2.0
//
// Error definitions for the concurrency module.

package concurrency

import "errors"

var (
	// ErrPoolClosed indicates the pool has been shut down and no worker
	// remains able to consume new jobs.
	ErrPoolClosed = errors.New("pool is closed")
)
