package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MapLimit applies fn to every item with at most limit calls in flight and
// returns the results in input order. fn cannot fail; callers fold errors
// into R. A limit below one means no bound.
//
// Example:
//
//	counts := MapLimit(ctx, 8, quotes, func(ctx context.Context, q domain.Quote) int {
//	    return feed.CommentCount(ctx, q.ID)
//	})
func MapLimit[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			results[i] = fn(ctx, item)

			return nil
		})
	}

	_ = g.Wait()

	return results
}
