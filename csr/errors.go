// Package csr: sentinel error set.
// All constructors MUST return these sentinels and tests MUST check them via
// errors.Is. Wrap with fmt.Errorf("ctx: %w", ErrX) when context is essential;
// callers still match with errors.Is.

package csr

import "errors"

var (
	// ErrEmptyMatrix indicates that the requested node count is not positive.
	ErrEmptyMatrix = errors.New("csr: matrix must have at least one node")

	// ErrIndexOutOfRange indicates that an edge endpoint lies outside [0, n).
	ErrIndexOutOfRange = errors.New("csr: node index out of range")

	// ErrBadWeight indicates that an edge weight is negative, NaN or ±Inf.
	// The coloring engine requires nonnegative finite weights.
	ErrBadWeight = errors.New("csr: edge weight must be finite and non-negative")
)
