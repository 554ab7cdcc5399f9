// Package pipeline is the pull side of seqkit: lazy, restartable sequences
// consumed through an Iterator.
//
// A Source yields a fresh Iterator per Iter call. Pipelines are lazy; no
// work happens until values are pulled via Collect, Drain, ForEach or All.
// Each stage pulls from the previous one on demand, so a slow consumer slows
// the producer without explicit flow control.
//
// Push sequences become pipelines through the bridges in package blocking,
// after which the terminals in package aggregate apply to both kinds.
//
// # Operators
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Tap: side-effect without altering the value
//   - Reduce: accumulate all values into one result
//   - Concat: join sources sequentially
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := pipeline.Map(src, func(_ context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	evens := pipeline.Filter(doubled, func(n int) bool { return n%4 == 0 })
//	results, err := pipeline.Collect(ctx, evens)
package pipeline
