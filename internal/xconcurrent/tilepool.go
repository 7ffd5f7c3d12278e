package xconcurrent

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"
)

// Tile is a contiguous, half-open range of path indices [Start, End)
// assigned to one worker goroutine, along with its own Index used to
// derive a deterministic RNG sub-stream seed.
type Tile struct {
	Index int
	Start int
	End   int
}

// Partition splits [0, nPaths) into up to tileCount contiguous tiles.
// Tiles are sized as evenly as possible; any remainder paths are spread
// one-per-tile across the first tiles so every tile differs in size by at
// most one path.
func Partition(nPaths, tileCount int) []Tile {
	if tileCount <= 0 {
		tileCount = 1
	}
	if tileCount > nPaths {
		tileCount = nPaths
	}
	base := nPaths / tileCount
	remainder := nPaths % tileCount

	tiles := make([]Tile, 0, tileCount)
	start := 0
	for i := 0; i < tileCount; i++ {
		size := base
		if i < remainder {
			size++
		}
		tiles = append(tiles, Tile{Index: i, Start: start, End: start + size})
		start += size
	}
	return tiles
}

// DefaultTileCount sizes the default tile count from the host's logical
// CPU count, probed with gopsutil rather than bare runtime.NumCPU so it
// reflects cgroup/container limits the way the rest of this codebase
// probes host resources.
func DefaultTileCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Run executes fn once per tile concurrently via errgroup, cancelling the
// remaining tiles' launch (not their in-flight work — cancellation is
// only observed at the tile boundary) as soon as one returns an error or
// ctx is cancelled.
func Run(ctx context.Context, tiles []Tile, fn func(ctx context.Context, t Tile) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tiles {
		t := t
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return fn(gctx, t)
		})
	}
	return g.Wait()
}

// Reduce runs compute once per tile concurrently, then folds the results
// in tile-index order (not completion order) via combine, starting from
// zero. This is the "floating-point reduction performed in a fixed order"
// spec.md §5 requires for bit-exact reproducibility independent of
// scheduling.
func Reduce[T any](ctx context.Context, tiles []Tile, compute func(ctx context.Context, t Tile) (T, error), combine func(acc, x T) T, zero T) (T, error) {
	results := make([]T, len(tiles))
	err := Run(ctx, tiles, func(ctx context.Context, t Tile) error {
		r, err := compute(ctx, t)
		if err != nil {
			return err
		}
		results[t.Index] = r
		return nil
	})
	if err != nil {
		var empty T
		return empty, err
	}

	acc := zero
	for _, r := range results {
		acc = combine(acc, r)
	}
	return acc, nil
}
