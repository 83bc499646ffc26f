package main

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

// ---------------------------------------------------------------------------
// TestFanOut - Bounded worker group
// ---------------------------------------------------------------------------

func TestFanOut_RunsEveryIndex(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	seen := make([]atomic.Bool, 10)
	errs := fanOut(context.Background(), 3, 10, func(_ context.Context, i int) error {
		calls.Add(1)
		seen[i].Store(true)
		if i == 4 {
			return errors.New("item 4")
		}
		return nil
	})

	if calls.Load() != 10 {
		t.Errorf("calls = %d, want 10", calls.Load())
	}
	for i := range seen {
		if !seen[i].Load() {
			t.Errorf("index %d not run", i)
		}
	}
	for i, err := range errs {
		if (err != nil) != (i == 4) {
			t.Errorf("errs[%d] = %v", i, err)
		}
	}
}

func TestFanOut_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int32
	release := make(chan struct{})
	done := make(chan []error)
	go func() {
		done <- fanOut(context.Background(), 2, 6, func(_ context.Context, _ int) error {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-release
			active.Add(-1)
			return nil
		})
	}()

	for i := 0; i < 6; i++ {
		release <- struct{}{}
	}
	<-done
	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestFanOut_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	errs := fanOut(ctx, 2, 5, func(_ context.Context, _ int) error {
		calls.Add(1)
		return nil
	})
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0 after cancel", calls.Load())
	}
	for i, err := range errs {
		if !errors.Is(err, context.Canceled) {
			t.Errorf("errs[%d] = %v, want context.Canceled", i, err)
		}
	}
}

func TestFanOut_Empty(t *testing.T) {
	t.Parallel()

	if errs := fanOut(context.Background(), 4, 0, nil); len(errs) != 0 {
		t.Errorf("errs = %v, want empty", errs)
	}
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize / TestValidateWorkers - Worker sizing
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := resolvePoolSize(5, 2); got != 5 {
		t.Errorf("flag: got %d, want 5", got)
	}
	if got := resolvePoolSize(0, 3); got != 3 {
		t.Errorf("env: got %d, want 3", got)
	}
	if got := resolvePoolSize(0, 100); got != maxWorkers {
		t.Errorf("env capped: got %d, want %d", got, maxWorkers)
	}
	want := max(1, min(runtime.GOMAXPROCS(0), 8))
	if got := resolvePoolSize(0, 0); got != want {
		t.Errorf("auto: got %d, want %d", got, want)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, maxWorkers} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{-1, maxWorkers + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}
