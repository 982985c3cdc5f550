// Package api
//
// Executor contract for job dispatch onto a fixed worker pool.

package api

// Job is a unit of work owned by the pool until executed exactly once.
// The argument is the identity of the worker running it.
type Job func(workerID int)

// Executor abstracts submission of jobs to a set of persistent workers.
type Executor interface {
	// Submit enqueues a job for execution by exactly one worker.
	Submit(job Job) error

	// NumWorkers returns the number of workers in the pool.
	NumWorkers() int

	// Close tears the pool down, draining queued jobs first.
	Close()
}
