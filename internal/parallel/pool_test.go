package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkers(t *testing.T) {
	if got := Workers(3); got != 3 {
		t.Errorf("Workers(3) = %d, want 3", got)
	}
	if got, want := Workers(0), runtime.GOMAXPROCS(0); got != want {
		t.Errorf("Workers(0) = %d, want %d", got, want)
	}
	if got, want := Workers(-1), runtime.GOMAXPROCS(0); got != want {
		t.Errorf("Workers(-1) = %d, want %d", got, want)
	}
}

func TestForEach_VisitsAll(t *testing.T) {
	const n = 128
	seen := make([]int32, n)

	err := ForEach(context.Background(), n, 4, func(_ context.Context, i int) error {
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	for i, c := range seen {
		if c != 1 {
			t.Errorf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestForEach_Empty(t *testing.T) {
	called := false
	err := ForEach(context.Background(), 0, 4, func(context.Context, int) error {
		called = true
		return nil
	})
	if err != nil {
		t.Errorf("ForEach(n=0) error = %v", err)
	}
	if called {
		t.Error("fn called for n=0")
	}
}

func TestForEach_RespectsLimit(t *testing.T) {
	const limit = 2
	var (
		mu      sync.Mutex
		running int
		peak    int
	)

	err := ForEach(context.Background(), 64, limit, func(context.Context, int) error {
		mu.Lock()
		running++
		peak = max(peak, running)
		mu.Unlock()

		runtime.Gosched()

		mu.Lock()
		running--
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	if peak > limit {
		t.Errorf("peak concurrency = %d, want <= %d", peak, limit)
	}
}

func TestForEach_FirstError(t *testing.T) {
	errBoom := errors.New("boom")

	err := ForEach(context.Background(), 100, 1, func(_ context.Context, i int) error {
		if i == 10 {
			return errBoom
		}
		return nil
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("ForEach() error = %v, want %v", err, errBoom)
	}
}

func TestForEach_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := ForEach(ctx, 16, 2, func(context.Context, int) error {
		calls.Add(1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ForEach() error = %v, want context.Canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("fn called %d times on canceled context, want 0", calls.Load())
	}
}
