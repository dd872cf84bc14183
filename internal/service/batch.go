package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// BatchSolver solves independent route requests concurrently on a bounded
// goroutine pool. Each request owns its graph; nothing is shared between jobs.
type BatchSolver struct {
	service *RouteService
	pool    *ants.Pool
	workers int
}

// NewBatchSolver creates a BatchSolver backed by a pool of the given size.
func NewBatchSolver(service *RouteService, workers int) (*BatchSolver, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create batch pool: %w", err)
	}
	return &BatchSolver{
		service: service,
		pool:    pool,
		workers: workers,
	}, nil
}

// Workers returns the pool capacity.
func (b *BatchSolver) Workers() int {
	return b.workers
}

// SolveAll runs every request and returns one outcome per request, in input order.
// The returned error is a *TaskError listing failed items, or the context error
// if the batch was cancelled.
func (b *BatchSolver) SolveAll(ctx context.Context, reqs []RouteRequest) ([]BatchOutcome, error) {
	outcomes := make([]BatchOutcome, len(reqs))
	if len(reqs) == 0 {
		return outcomes, nil
	}

	var wg sync.WaitGroup
	for i := range reqs {
		idx := i
		outcomes[idx].Index = idx
		if err := ctx.Err(); err != nil {
			outcomes[idx].Err = err
			continue
		}

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				outcomes[idx].Err = err
				return
			}
			res, err := b.service.Solve(ctx, reqs[idx])
			outcomes[idx].Result = res
			outcomes[idx].Err = err
		})
		if err != nil {
			wg.Done()
			outcomes[idx].Err = fmt.Errorf("submit batch item %d: %w", idx, err)
		}
	}
	wg.Wait()

	var (
		taskErr   TaskError
		cancelErr error
	)
	for _, out := range outcomes {
		if out.Err == nil {
			continue
		}
		if errors.Is(out.Err, context.Canceled) || errors.Is(out.Err, context.DeadlineExceeded) {
			if cancelErr == nil {
				cancelErr = out.Err
			}
		}
		taskErr.append(fmt.Errorf("request %d: %w", out.Index, out.Err))
	}
	b.service.metrics.ObserveBatch(len(reqs), len(taskErr.Errors))
	if cancelErr != nil {
		return outcomes, cancelErr
	}
	return outcomes, taskErr.asError()
}

// Release stops the pool's workers.
func (b *BatchSolver) Release() {
	b.pool.Release()
}
