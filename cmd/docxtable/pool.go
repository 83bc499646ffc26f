package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// maxWorkers bounds --workers.
const maxWorkers = 32

// ErrInvalidWorkerCount is returned for a negative or oversized worker count.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// validateWorkers checks the --workers flag; 0 means auto.
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: %d (must be 0 to %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolvePoolSize determines the number of workers.
// Priority: explicit flag > DOCXTABLE_WORKERS > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, maxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	return max(1, min(runtime.GOMAXPROCS(0), 8))
}

// fanOut calls fn for every index in [0, n) on at most workers goroutines
// and returns the errors by index. Indexes picked up after ctx is done
// are not run and report ctx.Err().
func fanOut(ctx context.Context, workers, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	if n == 0 {
		return errs
	}
	workers = max(1, min(workers, n))

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return errs
}
