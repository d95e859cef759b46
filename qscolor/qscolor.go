// Package qscolor: the refinement engine.
//
// Refine computes a quasi-stable coloring of a directed, edge-weighted graph:
// a partition of its nodes into color classes such that, for every pair of
// classes (A, B), all nodes of A carry nearly equal total edge weight toward
// B, in both the outgoing and incoming directions.
//
// Algorithm outline:
//  1. Start from the trivial one-color partition and build two colorStatus
//     instances, one over the weights and one over their transpose.
//  2. Each iteration, pick the worst-spread color pair ("witness") in each
//     direction independently. Stop when both spreads are ≤ Tolerance or the
//     color cap is reached.
//  3. Act on the direction with the larger spread (ties favor outgoing):
//     split the witness color at the mean weight of its members toward the
//     witness target — members above the mean are ejected into a new color.
//  4. Push the incremental update into both statuses and repeat.
//
// A degenerate witness — one whose members all carry identical weight toward
// the target, so the mean separates nothing — is masked and the next-best
// witness is tried, bounded by the WitnessRetries budget. When no splittable
// witness remains the run stops and reports its current state as converged.
//
// Complexity per split: O(V + E_cols) for the two neighbor columns plus
// O(m·(|old|+|new|) + m·avg-color-size) for the max/min repairs, with m the
// current color count. The loop is strictly sequential across iterations;
// within one iteration the bulk reductions fan out over Workers goroutines
// writing disjoint rows, so results are bit-identical for any worker count.

package qscolor

import (
	"errors"
	"math"
	"runtime"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/lvlgraph/qscolor/csr"
)

// Refine runs quasi-stable refinement over the weight matrix w and returns
// the final partition with its achieved q-error.
//
// Returns a typed error for invalid configuration (ErrBadTolerance,
// ErrBadMaxColors, ErrBadWorkers, ErrBadRetries) or a nil matrix
// (ErrNilMatrix). A run never returns a partial result: on success the
// partition covers all nodes with pairwise-disjoint colors.
//
// Example:
//
//	res, err := qscolor.Refine(w,
//	    qscolor.WithMaxColors(64),
//	    qscolor.WithTolerance(0.5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Partition.Len(), "colors, q-error", res.QError)
func Refine(w *csr.Matrix, opts ...Option) (*Result, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if w == nil {
		return nil, ErrNilMatrix
	}
	if cfg.Tolerance < 0 {
		return nil, ErrBadTolerance
	}
	if cfg.MaxColors < 0 {
		return nil, ErrBadMaxColors
	}
	if cfg.Workers < 0 {
		return nil, ErrBadWorkers
	}
	if cfg.WitnessRetries < 0 {
		return nil, ErrBadRetries
	}

	// 2) Resolve defaults.
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	maxColors := cfg.MaxColors
	if maxColors == 0 {
		maxColors = math.MaxInt
	}
	if cfg.UnitWeights {
		w = w.Binarize()
	}

	// 3) Build both directional statuses from the one-color partition.
	v := w.Dims()
	capacity := baseMatrixSize
	if maxColors < capacity {
		capacity = maxColors
	}
	e := &engine{
		cfg:     cfg,
		workers: workers,
		p:       NewPartition(v),
		out:     newColorStatus(v, capacity, w),
		in:      newColorStatus(v, capacity, w.Transpose()),
	}
	if err := e.out.initialize(e.p, workers); err != nil {
		return nil, err
	}
	if err := e.in.initialize(e.p, workers); err != nil {
		return nil, err
	}

	// 4) Run the refinement loop.
	return e.run(maxColors)
}

// engine owns the partition and both directional statuses for one run.
// They are created together and mutated in lockstep; nothing else observes
// them while the loop is running.
type engine struct {
	cfg     Options
	workers int
	p       *Partition
	out, in *colorStatus
}

// run drives the main loop until the stopping condition holds.
func (e *engine) run(maxColors int) (*Result, error) {
	splits := 0
	for e.p.Len() < maxColors {
		m := e.p.Len()

		// Double both backings before the split that would overflow them.
		if m == e.out.n {
			e.out.resize(e.out.n*2, m)
			e.in.resize(e.in.n*2, m)
		}

		wOut, _ := e.out.pickWitness(e.p, nil)
		wIn, _ := e.in.pickWitness(e.p, nil)
		if wOut.spread <= e.cfg.Tolerance && wIn.spread <= e.cfg.Tolerance {
			break
		}

		old, fresh, err := e.splitOnce()
		if errors.Is(err, errNoSplittableWitness) {
			// Every candidate above tolerance is degenerate: converged.
			break
		}
		if err != nil {
			return nil, err
		}

		// A split in either direction changes the color composition seen by
		// both statuses, so both are always repaired together.
		if err = e.out.applySplit(e.p, old, fresh, e.workers); err != nil {
			return nil, err
		}
		if err = e.in.applySplit(e.p, old, fresh, e.workers); err != nil {
			return nil, err
		}
		splits++

		if e.p.Len()%progressEvery == 0 {
			e.reportProgress(math.Max(wOut.spread, wIn.spread))
		}
	}

	// Final q-error from fresh scans of both directions.
	fOut, _ := e.out.pickWitness(e.p, nil)
	fIn, _ := e.in.pickWitness(e.p, nil)

	return &Result{
		Partition: e.p,
		QError:    math.Max(fOut.spread, fIn.spread),
		Splits:    splits,
	}, nil
}

// splitOnce chooses a direction and performs exactly one successful split,
// falling back past degenerate witnesses within the retry budget.
// Returns the split color's index and the appended color's index.
func (e *engine) splitOnce() (old, fresh int, err error) {
	skipOut := make(map[[2]int]struct{})
	skipIn := make(map[[2]int]struct{})

	for attempt := 0; attempt <= e.cfg.WitnessRetries; attempt++ {
		wOut, okOut := e.out.pickWitness(e.p, skipOut)
		wIn, okIn := e.in.pickWitness(e.p, skipIn)
		okOut = okOut && wOut.spread > e.cfg.Tolerance
		okIn = okIn && wIn.spread > e.cfg.Tolerance

		// Larger spread wins; an exact tie favors the outgoing direction.
		var st *colorStatus
		var wit witness
		var skip map[[2]int]struct{}
		switch {
		case okOut && (!okIn || wOut.spread >= wIn.spread):
			st, wit, skip = e.out, wOut, skipOut
		case okIn:
			st, wit, skip = e.in, wIn, skipIn
		default:
			return 0, 0, errNoSplittableWitness
		}

		row := st.neighborT.RawRowView(wit.j)
		threshold := wit.threshold
		fresh, err = e.p.Split(wit.i, func(u int32) bool { return row[u] > threshold })
		if err == nil {
			return wit.i, fresh, nil
		}
		if !errors.Is(err, ErrDegenerateSplit) {
			return 0, 0, err
		}
		skip[[2]int{wit.i, wit.j}] = struct{}{}
	}

	return 0, 0, errNoSplittableWitness
}

// reportProgress emits the observational progress event: color count, the
// worst spread that drove this split, and the median color size.
func (e *engine) reportProgress(maxErr float64) {
	sizes := make([]float64, e.p.Len())
	for i := range sizes {
		sizes[i] = float64(len(e.p.Color(i)))
	}
	sort.Float64s(sizes)
	median := stat.Quantile(0.5, stat.Empirical, sizes, nil)

	e.cfg.Logger.Info().
		Int("colors", e.p.Len()).
		Float64("max_error", maxErr).
		Float64("median_size", median).
		Msg("refinement progress")
}
