// Package worker runs slow client operations off the UI execution context.
package worker

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Pool is a bounded goroutine pool that can be waited on.
type Pool struct {
	pool   *ants.Pool
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewPool creates a pool running at most size jobs at once.
func NewPool(size int, logger *zap.Logger) (*Pool, error) {
	if size <= 0 {
		size = 4
	}

	logger = logger.With(zap.String("component", "worker-pool"))
	pool, err := ants.NewPool(size, ants.WithOptions(ants.Options{
		PanicHandler: func(p interface{}) {
			logger.Error("Worker job panicked", zap.Any("panic", p))
		},
	}))
	if err != nil {
		return nil, fmt.Errorf("create ants pool failed: %w", err)
	}

	return &Pool{pool: pool, logger: logger}, nil
}

// Submit queues job. It blocks while the pool is saturated.
func (p *Pool) Submit(job func()) error {
	p.wg.Add(1)
	if err := p.pool.Submit(func() {
		defer p.wg.Done()
		job()
	}); err != nil {
		p.wg.Done()
		return fmt.Errorf("submit task failed: %w", err)
	}
	return nil
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Running returns the number of jobs currently executing.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Release waits for in-flight jobs and stops the pool.
// Safe to call multiple times.
func (p *Pool) Release() {
	p.wg.Wait()
	if !p.pool.IsClosed() {
		p.pool.Release()
	}
}
