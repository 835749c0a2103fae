// Package sampler implements the two-pass sparse-field sampler: a coarse
// pass over internal blocks and a fine pass over their candidate leaves,
// each pruning regions the model proves cannot contain the iso-surface.
// Parallel fan-out and cancellation follow the same
// golang.org/x/sync/errgroup pattern as field.Build.
package sampler
