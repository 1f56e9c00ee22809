package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers returns the effective worker count for n.
// If n is 0 or negative, GOMAXPROCS is used.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// ForEach calls fn for every index in [0, n) using at most workers
// goroutines at a time.
//
// The first error cancels the context passed to the remaining calls and is
// returned once all started calls have finished. Indices not yet started
// when the context is done are skipped. fn must be safe for concurrent use;
// writing to distinct elements of a shared slice by index is fine.
func ForEach(parent context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return parent.Err()
	}

	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(min(Workers(workers), n))

	for i := range n {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// The group context is always done after Wait; only the caller's matters.
	return parent.Err()
}
