package graph

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/burstbuild/internal/ctxlog"
	"github.com/specialistvlad/burstbuild/internal/mtime"
)

// StatAll refreshes the mtime of every node using up to workers goroutines
// (at least one). Each worker writes only the node it was handed. The first
// failure stops the remaining queries and is returned.
func (g *Graph) StatAll(ctx context.Context, st mtime.Stater, workers int) error {
	logger := ctxlog.FromContext(ctx)
	if workers < 1 {
		workers = 1
	}
	nodes := g.Nodes()
	logger.Debug("Resolving node timestamps.", "nodes", len(nodes), "workers", workers)
	start := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, n := range nodes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return n.Stat(st)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	logger.Debug("Node timestamps resolved.", "nodes", len(nodes), "elapsed", time.Since(start))
	return nil
}
