// Package pool runs independent I/O-bound tasks on a bounded set of goroutines.
package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolShutdown is returned when submitting to a shut down pool.
var ErrPoolShutdown = errors.New("worker pool has been shut down")

// WorkerPool executes submitted tasks on a fixed number of workers.
type WorkerPool struct {
	maxWorkers int
	tasks      chan func()
	wg         sync.WaitGroup
	shutdown   atomic.Bool
	once       sync.Once
}

// NewWorkerPool starts maxWorkers workers. A non-positive value selects
// twice the number of CPUs, since the tasks mostly wait on the filesystem.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = 2 * runtime.NumCPU()
	}

	p := &WorkerPool{
		maxWorkers: maxWorkers,
		tasks:      make(chan func(), maxWorkers*4),
	}
	for i := 0; i < maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int {
	return p.maxWorkers
}

// Submit queues task, blocking while the queue is full.
// It returns ctx.Err() if ctx ends before the task is queued.
func (p *WorkerPool) Submit(ctx context.Context, task func()) error {
	if p.shutdown.Load() {
		return ErrPoolShutdown
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- task:
		return nil
	}
}

// Shutdown waits for queued tasks to finish and stops the workers.
// It is safe to call more than once.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		p.shutdown.Store(true)
		close(p.tasks)
		p.wg.Wait()
	})
}

// Map applies fn to every item on the pool and returns the results in input
// order. Tasks write only to their own result slot. If ctx ends while tasks
// are still being queued, Map waits for the queued ones and returns ctx.Err()
// alongside the partial results; unqueued slots keep their zero value.
func Map[T, R any](ctx context.Context, p *WorkerPool, items []T, fn func(T) R) ([]R, error) {
	results := make([]R, len(items))
	var wg sync.WaitGroup

	var submitErr error
	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		err := p.Submit(ctx, func() {
			defer wg.Done()
			results[i] = fn(item)
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}

	wg.Wait()
	return results, submitErr
}
