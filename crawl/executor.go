package crawl

import (
	"context"
	"runtime"

	"github.com/timarques/eucatalog"
	"golang.org/x/sync/errgroup"
)

// Parallelism returns the task group bound used in parallel mode.
func Parallelism() int {
	return runtime.GOMAXPROCS(0)
}

// Execute runs fn once per item and returns the results in input order.
//
// In serial mode items run one after another and the first error stops the
// batch. In parallel mode every item runs on a task group bounded by
// Parallelism; all tasks run to completion even after a sibling fails, and
// the error of the lowest failing input position is returned. A panicking
// task becomes an ECONCURRENCY error.
func Execute[T, R any](ctx context.Context, mode eucatalog.ExecutionMode, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	if mode == eucatalog.Serial {
		for i, item := range items {
			r, err := call(ctx, i, item, fn)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	errs := make([]error, len(items))
	var g errgroup.Group
	g.SetLimit(Parallelism())
	for i, item := range items {
		g.Go(func() error {
			results[i], errs[i] = call(ctx, i, item, fn)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func call[T, R any](ctx context.Context, position int, item T, fn func(context.Context, T) (R, error)) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = eucatalog.Errorf(eucatalog.ECONCURRENCY, "task %d panicked: %v", position, p)
		}
	}()
	return fn(ctx, item)
}
