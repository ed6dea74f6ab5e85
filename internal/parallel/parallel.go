// Package parallel provides the data-parallel building blocks of the
// renderer: a bounded fan-out over row bands and an atomic dirty-tile
// bitmap for incremental repaint.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxWorkers bounds the number of goroutines a single fan-out may use.
const MaxWorkers = 256

// ClampWorkers clamps n to [1, MaxWorkers]. Zero or negative selects
// GOMAXPROCS.
func ClampWorkers(n int) int {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(1, min(n, MaxWorkers))
}

// Rows splits [0, n) into at most workers contiguous bands and calls fn
// for each band concurrently. fn must only touch state owned by its band.
// With one worker, or a single row, fn runs on the calling goroutine.
func Rows(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers = min(ClampWorkers(workers), n)
	if workers == 1 {
		fn(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	band := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += band {
		hi := min(lo+band, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// Each calls fn(i) for every i in [0, n) using at most workers
// goroutines. It is used where items differ widely in cost.
func Each(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers = min(ClampWorkers(workers), n)
	if workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
