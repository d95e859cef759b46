// Package qscolor: sentinel error set.
// All public entry points MUST return these sentinels and tests MUST check
// them via errors.Is. Structural invariant violations (coverage,
// disjointness) are programming errors and panic instead.

package qscolor

import "errors"

var (
	// ErrNilMatrix indicates that a nil weight matrix was passed to Refine.
	ErrNilMatrix = errors.New("qscolor: weight matrix is nil")

	// ErrBadTolerance indicates that Tolerance was set to a negative value.
	ErrBadTolerance = errors.New("qscolor: Tolerance must be non-negative")

	// ErrBadMaxColors indicates that MaxColors was set to a negative value.
	// Zero means unbounded; a positive value caps the color count.
	ErrBadMaxColors = errors.New("qscolor: MaxColors must not be negative")

	// ErrBadWorkers indicates that Workers was set to a negative value.
	ErrBadWorkers = errors.New("qscolor: Workers must not be negative")

	// ErrBadRetries indicates that WitnessRetries was set to a negative value.
	ErrBadRetries = errors.New("qscolor: WitnessRetries must not be negative")

	// ErrDegenerateSplit indicates that a split predicate failed to separate
	// any members: every member fell on the same side of the threshold.
	// The engine recovers by falling back to the next-best witness; the
	// partition is never mutated by a degenerate split.
	ErrDegenerateSplit = errors.New("qscolor: split predicate separates no members")

	// errNoSplittableWitness signals internally that no remaining witness can
	// be split; the engine treats the run as converged, not failed.
	errNoSplittableWitness = errors.New("qscolor: no splittable witness remains")
)
