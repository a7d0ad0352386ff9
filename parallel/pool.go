// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

type (
	// WorkerFunc queues a job.
	WorkerFunc func(func())
	// WaitFunc blocks until every queued job has finished.
	WaitFunc func()
)

// Pool feeds jobs to its workers in submission order. A pool with a single
// worker runs each job inline inside Do.
type Pool struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup
	closed  atomic.Bool
	stop    func()
}

// Start launches a pool of n workers, or one per usable CPU when n < 1.
func Start(n int) *Pool {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{workers: n, stop: func() {}}
	if n == 1 {
		return p
	}

	p.jobs = make(chan func(), n)
	for range n {
		p.wg.Go(func() {
			for job := range p.jobs {
				job()
			}
		})
	}
	p.stop = sync.OnceFunc(func() { close(p.jobs) })
	return p
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.workers }

// Do queues job, blocking while every worker is busy and the queue is full.
// Once the pool has been waited on, jobs run inline.
func (p *Pool) Do(job func()) {
	if p.jobs == nil || p.closed.Load() {
		job()
		return
	}
	p.jobs <- job
}

// Wait stops accepting queued work and returns when the workers are done.
func (p *Pool) Wait() {
	p.closed.Store(true)
	p.stop()
	p.wg.Wait()
}
