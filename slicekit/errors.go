// Package slicekit computes deterministic slicing plans for out-of-core
// processing of N-dimensional datasets: it enumerates the ordered read/write
// windows that cover a previewed region, groups them into bounded batches,
// partitions the batches across cooperating worker ranks without any
// communication, and computes edge-replicated padding with its exact inverse
// crop.
package slicekit

import "errors"

// Common errors
var (
	ErrConfiguration      = errors.New("invalid slicing configuration")
	ErrInvalidSlice       = errors.New("invalid slice bounds")
	ErrUnsupportedPattern = errors.New("unsupported pattern")
)
