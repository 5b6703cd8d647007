// Package metrics evaluates predictions against true labels and renders the
// result.
//
// An Evaluator accumulates (label, prediction) pairs one row at a time and
// produces a Record once all rows have been seen. When every true label is 0
// or 1 the binary metric set is produced, otherwise the multiclass set.
// Probabilities are clamped to [1e-15, 1-1e-15] before taking logarithms and
// all logarithms are natural.
package metrics
