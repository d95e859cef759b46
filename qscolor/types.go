// Package qscolor defines configuration options and result types
// for the quasi-stable coloring refinement engine.
package qscolor

import "github.com/rs/zerolog"

const (
	// baseMatrixSize is the starting capacity of the status matrices.
	// Capacity doubles whenever the color count reaches it.
	baseMatrixSize = 128

	// progressEvery is the color-count cadence of progress reports.
	progressEvery = 10

	// DefaultWitnessRetries bounds how many degenerate witnesses one
	// iteration may discard before the run is declared converged.
	DefaultWitnessRetries = 3
)

// Options configures the refinement engine.
//
// MaxColors      – hard cap on the number of colors produced; 0 means unbounded.
// Tolerance      – target error tolerance; refinement stops once the worst
//
//	per-pair spread in both directions is ≤ this value. Must be ≥ 0.
//
// UnitWeights    – treat every edge as weight 1, ignoring stored weights.
// Workers        – parallelism degree for the bulk reductions; 0 means
//
//	runtime.GOMAXPROCS(0). Worker count never changes results.
//
// WitnessRetries – per-iteration budget of degenerate-witness fallbacks.
// Logger         – receives a progress event every 10 colors; defaults to Nop.
type Options struct {
	MaxColors      int
	Tolerance      float64
	UnitWeights    bool
	Workers        int
	WitnessRetries int
	Logger         zerolog.Logger
}

// Option represents a functional option for configuring Refine.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: unbounded colors,
// zero tolerance, stored weights, GOMAXPROCS workers, silent logger.
func DefaultOptions() Options {
	return Options{
		MaxColors:      0,
		Tolerance:      0,
		UnitWeights:    false,
		Workers:        0,
		WitnessRetries: DefaultWitnessRetries,
		Logger:         zerolog.Nop(),
	}
}

// WithMaxColors caps the number of colors produced. n=0 means unbounded.
func WithMaxColors(n int) Option {
	return func(o *Options) { o.MaxColors = n }
}

// WithTolerance sets the target q-error; refinement stops once both
// directions' worst spread is at or below q.
func WithTolerance(q float64) Option {
	return func(o *Options) { o.Tolerance = q }
}

// WithUnitWeights makes the engine treat every edge as weight 1.
func WithUnitWeights() Option {
	return func(o *Options) { o.UnitWeights = true }
}

// WithWorkers sets the parallelism degree of the bulk reductions.
// k=0 selects runtime.GOMAXPROCS(0). Results are identical for any k.
func WithWorkers(k int) Option {
	return func(o *Options) { o.Workers = k }
}

// WithWitnessRetries sets the per-iteration budget of degenerate-witness
// fallbacks before the run is declared converged.
func WithWitnessRetries(r int) Option {
	return func(o *Options) { o.WitnessRetries = r }
}

// WithLogger injects a zerolog.Logger for progress reporting.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Result is the outcome of a refinement run.
//
// Partition – the final ordered list of disjoint node sets.
// QError    – the achieved worst-case spread across both directions.
// Splits    – how many successful splits the run performed.
type Result struct {
	Partition *Partition
	QError    float64
	Splits    int
}

// Assignment returns the node→color mapping of the final partition.
func (r *Result) Assignment() []int {
	return r.Partition.Assignment()
}
