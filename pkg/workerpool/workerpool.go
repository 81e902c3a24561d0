// Package workerpool runs bounded fan-out over a slice of work items.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Process calls process for every item using at most workers goroutines.
// The first error cancels the context passed to the remaining calls and is
// returned once all started calls finish. Items not yet started when the
// context ends are skipped.
func Process[T any](
	ctx context.Context,
	workers int,
	items []T,
	process func(context.Context, T) error,
) error {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, item := range items {
		item := item
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return process(gctx, item)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
