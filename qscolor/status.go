// Package qscolor: per-direction bookkeeping over the current partition.
//
// A colorStatus tracks, for one edge direction, the node-by-color weight
// matrix and the color-by-color max/min/spread matrices. Two independent
// instances exist per run — one over the outgoing weights, one over their
// transpose — and every split updates both.
//
// Storage is the arena-with-logical-size pattern: the gonum mat.Dense
// backings are allocated at capacity n ≥ m (m = current color count) and
// only the active m×m block (m rows of neighborT) is meaningful. Capacity
// doubles when m reaches it; it never shrinks.

package qscolor

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/lvlgraph/qscolor/csr"
)

// colorStatus is the DirectionalStatus of one edge direction.
//
// neighborT is stored color-major (n×v): row c holds, for every node u, the
// total weight from u toward the members of color c in this direction.
// Keeping colors as rows makes each color's vector contiguous, so the
// SubsetSums scatter and the per-color reductions run over flat slices.
type colorStatus struct {
	v int // node count
	n int // backing capacity; active extent is the caller-tracked m ≤ n
	w *csr.Matrix

	neighborT    *mat.Dense // n×v: neighborT[c][u] = Σ_{x ∈ color c} w(u→x)
	upper, lower *mat.Dense // n×n: per-pair max/min over member rows
	errs         *mat.Dense // n×n: upper − lower, always ≥ 0
}

// witness is the outcome of a worst-cell scan: the color pair (i, j) with
// maximal spread, that spread, and the mean weight of color i's members
// toward color j (the candidate split threshold).
type witness struct {
	i, j      int
	spread    float64
	threshold float64
}

// newColorStatus allocates a status of capacity n over weight source w.
func newColorStatus(v, n int, w *csr.Matrix) *colorStatus {
	return &colorStatus{
		v:         v,
		n:         n,
		w:         w,
		neighborT: mat.NewDense(n, v, nil),
		upper:     mat.NewDense(n, n, nil),
		lower:     mat.NewDense(n, n, nil),
		errs:      mat.NewDense(n, n, nil),
	}
}

// resize grows the backing capacity to n2 > n, preserving the active m rows
// of neighborT and the active m×m block of upper/lower/errs. Never shrinks.
func (s *colorStatus) resize(n2, m int) {
	neighborT := mat.NewDense(n2, s.v, nil)
	upper := mat.NewDense(n2, n2, nil)
	lower := mat.NewDense(n2, n2, nil)
	errs := mat.NewDense(n2, n2, nil)

	for c := 0; c < m; c++ {
		copy(neighborT.RawRowView(c), s.neighborT.RawRowView(c))
		copy(upper.RawRowView(c)[:m], s.upper.RawRowView(c)[:m])
		copy(lower.RawRowView(c)[:m], s.lower.RawRowView(c)[:m])
		copy(errs.RawRowView(c)[:m], s.errs.RawRowView(c)[:m])
	}

	s.n = n2
	s.neighborT, s.upper, s.lower, s.errs = neighborT, upper, lower, errs
}

// initialize computes the full state from scratch for partition p:
// neighborT row c = SubsetSums over color c's members (conceptually W·M with
// M the 0/1 membership matrix), then per-color max/min rows and the spread.
// The per-color reductions fan out over workers; each goroutine writes a
// disjoint row, so the result is identical for any worker count.
func (s *colorStatus) initialize(p *Partition, workers int) error {
	m := p.Len()

	var g errgroup.Group
	g.SetLimit(workers)
	for c := 0; c < m; c++ {
		row := s.neighborT.RawRowView(c)
		members := p.Color(c)
		g.Go(func() error {
			s.w.SubsetSums(members, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var g2 errgroup.Group
	g2.SetLimit(workers)
	for i := 0; i < m; i++ {
		i := i
		g2.Go(func() error {
			s.recomputeRow(p, i, m)
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return err
	}

	s.refreshSpread(m)

	return nil
}

// applySplit incrementally repairs the state after color old lost members to
// the freshly appended color newC. p already reflects the split.
//
// A split invalidates (a) the two neighborT rows old/newC for every node,
// because those colors' membership changed, (b) the upper/lower rows
// old/newC, and (c) the upper/lower entries (c, old) and (c, newC) for every
// color c, because every color's weight toward the two touched colors
// changed. Nothing else is recomputed — that locality is what makes the
// update incremental instead of a re-initialization.
func (s *colorStatus) applySplit(p *Partition, old, newC, workers int) error {
	m := p.Len()

	var g errgroup.Group
	g.SetLimit(workers)
	for _, c := range []int{old, newC} {
		row := s.neighborT.RawRowView(c)
		members := p.Color(c)
		g.Go(func() error {
			s.w.SubsetSums(members, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Rows old and newC of upper/lower: membership of those colors changed.
	s.recomputeRow(p, old, m)
	s.recomputeRow(p, newC, m)

	// Columns old and newC for every color: the underlying neighborT rows
	// changed for all nodes. Each goroutine owns one upper/lower row.
	rowOld := s.neighborT.RawRowView(old)
	rowNew := s.neighborT.RawRowView(newC)
	var g2 errgroup.Group
	g2.SetLimit(workers)
	for c := 0; c < m; c++ {
		c := c
		g2.Go(func() error {
			members := p.Color(c)
			up, lo := s.upper.RawRowView(c), s.lower.RawRowView(c)
			up[old], lo[old] = maxMinAt(rowOld, members)
			up[newC], lo[newC] = maxMinAt(rowNew, members)
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return err
	}

	s.refreshSpread(m)

	return nil
}

// recomputeRow rebuilds upper[i][0:m] and lower[i][0:m] as the max/min of
// every neighborT row over color i's members.
func (s *colorStatus) recomputeRow(p *Partition, i, m int) {
	members := p.Color(i)
	up, lo := s.upper.RawRowView(i), s.lower.RawRowView(i)
	for j := 0; j < m; j++ {
		up[j], lo[j] = maxMinAt(s.neighborT.RawRowView(j), members)
	}
}

// refreshSpread recomputes errs = upper − lower over the active m×m block.
func (s *colorStatus) refreshSpread(m int) {
	for i := 0; i < m; i++ {
		floats.SubTo(s.errs.RawRowView(i)[:m], s.upper.RawRowView(i)[:m], s.lower.RawRowView(i)[:m])
	}
}

// pickWitness scans the active m×m spread block in flattened row-major order
// and returns the first maximal cell not present in skip, together with the
// mean weight of color i's members toward color j. Returns false when every
// cell is masked. The fixed scan order is the engine's tie-break rule.
func (s *colorStatus) pickWitness(p *Partition, skip map[[2]int]struct{}) (witness, bool) {
	m := p.Len()
	best := witness{i: -1, j: -1, spread: math.Inf(-1)}
	for i := 0; i < m; i++ {
		row := s.errs.RawRowView(i)[:m]
		for j, e := range row {
			if _, masked := skip[[2]int{i, j}]; masked {
				continue
			}
			if e > best.spread {
				best = witness{i: i, j: j, spread: e}
			}
		}
	}
	if best.i < 0 {
		return best, false
	}

	members := p.Color(best.i)
	row := s.neighborT.RawRowView(best.j)
	var sum float64
	for _, u := range members {
		sum += row[u]
	}
	best.threshold = sum / float64(len(members))

	return best, true
}

// maxMinAt returns the max and min of row at the given member positions.
// members is never empty, so both results are finite.
func maxMinAt(row []float64, members []int32) (mx, mn float64) {
	mx, mn = math.Inf(-1), math.Inf(1)
	for _, u := range members {
		w := row[u]
		if w > mx {
			mx = w
		}
		if w < mn {
			mn = w
		}
	}

	return mx, mn
}
