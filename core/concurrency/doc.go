// File: core/concurrency/doc.go
// License: Apache-2.0
//
// Concurrency primitives for httpool: a fixed-size pool of persistent
// worker goroutines consuming jobs from one shared FIFO queue. All workers
// contend for the same receive endpoint; dequeue is mutually exclusive,
// execution is not. Teardown drains the queue before releasing workers.
package concurrency
