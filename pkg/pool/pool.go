// Package pool runs a function over a slice with a fixed number of workers.
package pool

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Map calls fn for every item with at most limit calls in flight. Workers claim the
// next index from a shared cursor and store the result at that index, so the output
// order equals the input order whatever the completion order is.
//
// A failed call leaves a nil slot; it never stops the batch. The returned error is
// only the context error when ctx was cancelled before all items were claimed.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) ([]*R, error) {
	results := make([]*R, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if limit < 1 {
		limit = 1
	}
	if limit > len(items) {
		limit = len(items)
	}

	var cursor atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < limit; w++ {
		g.Go(func() error {
			for {
				idx := int(cursor.Add(1) - 1)
				if idx >= len(items) {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				r, err := fn(gctx, items[idx])
				if err != nil {
					continue
				}
				results[idx] = &r
			}
		})
	}

	return results, g.Wait()
}

// Compact drops nil slots and dereferences the rest, keeping order.
func Compact[R any](results []*R) []R {
	out := make([]R, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
