package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Run calls fn for every band on at most workers goroutines and waits for
// all of them. If workers is 0 or negative, GOMAXPROCS is used.
//
// The first error cancels the context passed to the remaining calls and is
// returned. With a single worker or a single band the calls run in order on
// the calling goroutine.
func Run(ctx context.Context, bands []Band, workers int, fn func(ctx context.Context, i int, b Band) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(bands) <= 1 {
		for i, b := range bands {
			if err := fn(ctx, i, b); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range bands {
		g.Go(func() error {
			return fn(gctx, i, b)
		})
	}
	return g.Wait()
}
