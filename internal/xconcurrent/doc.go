// Package xconcurrent partitions an embarrassingly-parallel path range
// into tiles and runs one goroutine per tile via golang.org/x/sync/errgroup,
// the fixed-order parallel fold spec.md §5 describes. Cancellation is only
// checked at tile boundaries, never mid-path.
package xconcurrent
