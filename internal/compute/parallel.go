package compute

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item with at most limit concurrent calls and
// returns results in input order. The first error cancels the rest.
// limit <= 0 means unbounded.
func Map[I, O any](ctx context.Context, limit int, items []I, fn func(context.Context, I) (O, error)) ([]O, error) {
	results := make([]O, len(items))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			out, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
