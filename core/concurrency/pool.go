// File: core/concurrency/pool.go
// License: Apache-2.0
//
// Pool dispatches jobs across a fixed set of worker goroutines sharing one
// FIFO queue. The queue is unbounded; Submit never blocks. A stop message is
// itself a queue item, so each worker exits only after everything queued
// ahead of it has been consumed.

package concurrency

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/httpool/httpool/api"
)

// message is a queue item: either a job or a stop signal. One stop message
// releases exactly one worker, since consumption is one-at-a-time.
type message struct {
	job  api.Job
	stop bool
}

// worker is a persistent consumer with a stable identity.
type worker struct {
	id   int
	done chan struct{} // closed when the worker's loop exits
}

// Pool manages a fixed set of worker goroutines.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	inbox   *queue.Queue // FIFO of message; dequeue guarded by mu
	workers []*worker
	closed  bool

	// statistics
	totalJobs     int64
	completedJobs int64
}

var _ api.Executor = (*Pool)(nil)

// New creates a Pool with max(1, size) workers, each starting its receive
// loop immediately. It never fails: goroutine launch is not a reportable
// error in Go short of process death.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{inbox: queue.New()}
	p.cond = sync.NewCond(&p.mu)
	p.workers = make([]*worker, size)
	for i := 0; i < size; i++ {
		w := &worker{id: i, done: make(chan struct{})}
		p.workers[i] = w
		go p.run(w)
	}
	return p
}

// Submit enqueues a job, returning ErrPoolClosed if the pool has been shut
// down. Exactly one idle-or-soon-idle worker will eventually run the job.
func (p *Pool) Submit(job api.Job) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.inbox.Add(message{job: job})
	atomic.AddInt64(&p.totalJobs, 1)
	p.cond.Signal()
	p.mu.Unlock()
	return nil
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return len(p.workers)
}

// Close enqueues one stop message per worker, then joins every worker in
// construction order. The queue is FIFO, so all jobs queued before Close
// complete before it returns. Close is not safe to call concurrently with
// Submit from other goroutines; late submissions fail with ErrPoolClosed.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		for range p.workers {
			p.inbox.Add(message{stop: true})
		}
		p.cond.Broadcast()
	}
	p.mu.Unlock()
	for _, w := range p.workers {
		<-w.done
	}
}

// Stats returns basic pool counters.
func (p *Pool) Stats() map[string]int64 {
	return map[string]int64{
		"submitted_jobs": atomic.LoadInt64(&p.totalJobs),
		"completed_jobs": atomic.LoadInt64(&p.completedJobs),
		"num_workers":    int64(len(p.workers)),
	}
}

// run is the receive loop for a single worker. Dequeue happens under the
// pool lock, execution outside it.
func (p *Pool) run(w *worker) {
	defer close(w.done)
	for {
		p.mu.Lock()
		for p.inbox.Length() == 0 {
			p.cond.Wait()
		}
		msg := p.inbox.Remove().(message)
		p.mu.Unlock()
		if msg.stop {
			return
		}
		p.invoke(msg.job, w.id)
	}
}

// invoke runs one job, recovering from panics so a failing job cannot take
// the worker down with it. Failure stays isolated to the job.
func (p *Pool) invoke(job api.Job, id int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker %d: recovered panic in job: %v", id, r)
		}
		atomic.AddInt64(&p.completedJobs, 1)
	}()
	job(id)
}
