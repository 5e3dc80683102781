// Package parallel splits index ranges across goroutines for the row and
// feature reductions of a DataSet.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
)

// DefaultThreshold is the item count below which work runs on the caller's
// goroutine.
const DefaultThreshold = 1000

// Range is a half-open interval [Start, End).
type Range struct {
	Start, End int
}

// Chunks divides items into at most workers contiguous ranges of near-equal
// size. A non-positive workers value uses runtime.NumCPU.
func Chunks(items, workers int) []Range {
	if items <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}
	size := (items + workers - 1) / workers

	ranges := make([]Range, 0, workers)
	for start := 0; start < items; start += size {
		end := start + size
		if end > items {
			end = items
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}

// Parallelize runs fn once per chunk of [0, items) on its own goroutine and
// waits for all of them. A panic in any worker is re-raised on the caller's
// goroutine after every worker has stopped.
func Parallelize(items int, fn func(start, end int)) {
	ranges := Chunks(items, 0)
	if len(ranges) == 0 {
		return
	}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		panicked any
	)
	for _, r := range ranges {
		wg.Add(1)
		go func(r Range) {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					once.Do(func() { panicked = p })
				}
			}()
			fn(r.Start, r.End)
		}(r)
	}
	wg.Wait()

	if panicked != nil {
		if err, ok := panicked.(error); ok {
			panic(err)
		}
		panic(fmt.Sprint(panicked))
	}
}

// ParallelizeWithThreshold runs fn sequentially over [0, items) when items is
// at most threshold, and through Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}

// Map evaluates fn for every index in [0, items) and returns the results in
// index order.
func Map[T any](items, threshold int, fn func(i int) T) []T {
	out := make([]T, items)
	ParallelizeWithThreshold(items, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = fn(i)
		}
	})
	return out
}
