// Package pipeline provides composable, pull-based lazy sequences.
//
// A Pipeline holds a factory, not data: every traversal (Collect, Drain,
// ForEach, Count) calls the factory again and gets a fresh Iterator.
// Sources that reopen their input inside the factory, such as a file-backed
// row stream, are therefore restartable for free, and downstream operators
// never buffer more than the value in flight.
//
// # Operators
//
//   - Map: transform each value
//   - Tap: side-effect without altering the value (logging, counting)
//   - Take: stop after n values
//   - Batch: group values into slices of at most n
//
// Everything runs on the caller's goroutine. A cancelled context stops the
// traversal at the next pull with ctx.Err().
//
// # Usage
//
//	rows := pipeline.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := pipeline.Map(rows, func(_ context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	batches := pipeline.Batch(pipeline.Take(doubled, 4), 2)
//	results, _ := pipeline.Collect(ctx, batches)
package pipeline
