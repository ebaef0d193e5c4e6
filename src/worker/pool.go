package worker

import (
	"log"
	"runtime"
	"sync"
)

// Task is one unit of work, typically executing a selected item's action.
type Task func() error

// ResultCallback is invoked on completion from a worker goroutine. The event
// loop passes a closure that posts back into the loop safely.
type ResultCallback func(err error)

// Pool is a fixed-size worker pool with a 1-slot input queue (strict
// back-pressure): while an action is queued, further selections are dropped
// rather than piling up.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	task Task
	cb   ResultCallback
}

// New creates a worker pool. Size defaults to NumCPU when size<=0.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				err := j.task()
				if err != nil {
					log.Printf("worker: task failed: %v", err)
				}
				if j.cb != nil {
					j.cb(err)
				}
			}
		}()
	}
}

// Submit enqueues a task if the single-slot queue is free. Returns false if
// the task was dropped.
func (p *Pool) Submit(task Task, cb ResultCallback) bool {
	select {
	case p.jobs <- job{task: task, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
