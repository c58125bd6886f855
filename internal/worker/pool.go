// Package worker provides a fixed-size pool for running independent,
// index-addressed tasks concurrently. Callers own the result slice and
// write by index, so output order always matches input order regardless of
// completion order.
package worker

import (
	"context"
	"sync"
)

// Pool bounds how many tasks run at once.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given concurrency; values below 1 are
// clamped to 1.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes fn(ctx, i) for every i in [0, n) using at most the pool's
// worker count at a time. It returns when all tasks have finished or the
// context is cancelled; remaining tasks are skipped after cancellation.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > n {
		workers = n
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
}
