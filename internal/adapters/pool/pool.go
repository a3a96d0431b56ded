// Package pool implements a bounded worker pool for check tasks.
package pool

import (
	"runtime"
	"sync"

	"go.trai.ch/mason/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

var _ ports.WorkerPool = (*Pool)(nil)

// Pool implements ports.WorkerPool with a fixed number of worker
// goroutines draining a task channel. Tasks never return errors to the
// pool; result collection belongs to the submitter.
type Pool struct {
	tasks chan func()
	g     *errgroup.Group
	once  sync.Once
}

// New creates a pool with the given number of workers. Zero or negative
// means one worker per CPU.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		tasks: make(chan func(), workers*2),
		g:     &errgroup.Group{},
	}
	for range workers {
		p.g.Go(func() error {
			for task := range p.tasks {
				task()
			}
			return nil
		})
	}
	return p
}

// Spawn queues a task. It blocks while the backlog is full.
func (p *Pool) Spawn(task func()) {
	p.tasks <- task
}

// Shutdown closes the queue and waits for the workers to drain it.
// Spawning after Shutdown panics.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.tasks)
		_ = p.g.Wait() // Workers never return errors.
	})
}
