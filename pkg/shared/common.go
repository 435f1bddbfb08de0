package shared

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEachWithBoundedGoroutines calls f for every value with at most limit calls in flight.
// A limit below 2 runs the calls sequentially in order. The first error cancels the context
// handed to the remaining calls and is returned.
func ForEachWithBoundedGoroutines[T any](ctx context.Context, limit int, values []T, f func(ctx context.Context, i int, value T) error) error {
	if limit < 2 {
		for i, value := range values {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i, value); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, value := range values {
		i, value := i, value
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx, i, value)
		})
	}
	return g.Wait()
}
