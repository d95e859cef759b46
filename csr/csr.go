// Package csr: the Matrix type and its constructors.
// Matrix is a concrete, column-major sparse implementation storing entries in
// three flat slices for performance and cache friendliness.

package csr

import (
	"fmt"
	"math"
	"sort"
)

// Edge is one directed, weighted edge of the input graph.
// Src and Dst are node indices in [0, n); Weight must be finite and ≥ 0.
type Edge struct {
	Src    int
	Dst    int
	Weight float64
}

// Matrix is an n×n sparse weight matrix in compressed-sparse-column form.
// W[r][c] is the weight of the edge r→c; absent entries are zero.
// colPtr has length n+1; column c occupies rowIdx/val[colPtr[c]:colPtr[c+1]],
// sorted by row with no duplicate rows.
type Matrix struct {
	n      int       // number of nodes (rows == cols)
	colPtr []int     // n+1 column offsets into rowIdx/val
	rowIdx []int32   // row index per stored entry
	val    []float64 // weight per stored entry
}

// New builds an n×n Matrix from an edge list.
// Stage 1 (Validate): n > 0, endpoints in range, weights finite and ≥ 0.
// Stage 2 (Prepare):  bucket entries per destination column.
// Stage 3 (Finalize): sort each column by row, accumulating duplicates.
// Complexity: O(E log E) time, O(E) space.
func New(n int, edges []Edge) (*Matrix, error) {
	// Validate node count.
	if n <= 0 {
		return nil, fmt.Errorf("New(n=%d): %w", n, ErrEmptyMatrix)
	}

	// Validate every edge before any allocation proportional to E.
	for k, e := range edges {
		if e.Src < 0 || e.Src >= n || e.Dst < 0 || e.Dst >= n {
			return nil, fmt.Errorf("New: edge %d (%d→%d): %w", k, e.Src, e.Dst, ErrIndexOutOfRange)
		}
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("New: edge %d (%d→%d) weight=%v: %w", k, e.Src, e.Dst, e.Weight, ErrBadWeight)
		}
	}

	// Count entries per destination column.
	counts := make([]int, n+1)
	for _, e := range edges {
		counts[e.Dst+1]++
	}
	for c := 0; c < n; c++ {
		counts[c+1] += counts[c]
	}

	// Scatter entries into their column buckets.
	rowIdx := make([]int32, len(edges))
	val := make([]float64, len(edges))
	next := make([]int, n)
	copy(next, counts[:n])
	for _, e := range edges {
		k := next[e.Dst]
		rowIdx[k] = int32(e.Src)
		val[k] = e.Weight
		next[e.Dst]++
	}

	m := &Matrix{n: n, colPtr: counts, rowIdx: rowIdx, val: val}
	m.normalize()

	return m, nil
}

// normalize sorts each column by row and merges duplicate rows by summing
// their weights, compacting the backing slices in place.
func (m *Matrix) normalize() {
	write := 0
	newPtr := make([]int, m.n+1)
	for c := 0; c < m.n; c++ {
		lo, hi := m.colPtr[c], m.colPtr[c+1]
		seg := colSegment{rows: m.rowIdx[lo:hi], vals: m.val[lo:hi]}
		sort.Sort(seg)

		newPtr[c] = write
		for k := lo; k < hi; k++ {
			if write > newPtr[c] && m.rowIdx[write-1] == m.rowIdx[k] {
				// Duplicate edge: accumulate weight.
				m.val[write-1] += m.val[k]
				continue
			}
			m.rowIdx[write] = m.rowIdx[k]
			m.val[write] = m.val[k]
			write++
		}
	}
	newPtr[m.n] = write
	m.colPtr = newPtr
	m.rowIdx = m.rowIdx[:write]
	m.val = m.val[:write]
}

// colSegment sorts one column's (row, value) pairs by row index.
type colSegment struct {
	rows []int32
	vals []float64
}

func (s colSegment) Len() int           { return len(s.rows) }
func (s colSegment) Less(i, j int) bool { return s.rows[i] < s.rows[j] }
func (s colSegment) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}

// Dims returns the node count n (the matrix is always square).
// Complexity: O(1).
func (m *Matrix) Dims() int { return m.n }

// NNZ returns the number of stored (nonzero-capable) entries.
// Complexity: O(1).
func (m *Matrix) NNZ() int { return len(m.rowIdx) }

// At returns W[r][c], the weight of edge r→c, or 0 when absent.
// Out-of-range indices return 0; At is a read-side convenience, not a
// validator. Complexity: O(log nnz(c)).
func (m *Matrix) At(r, c int) float64 {
	if r < 0 || r >= m.n || c < 0 || c >= m.n {
		return 0
	}
	lo, hi := m.colPtr[c], m.colPtr[c+1]
	seg := m.rowIdx[lo:hi]
	k := sort.Search(len(seg), func(i int) bool { return seg[i] >= int32(r) })
	if k < len(seg) && seg[k] == int32(r) {
		return m.val[lo+k]
	}

	return 0
}

// ColSum returns Σ_r W[r][c], the total weight entering column c.
// Complexity: O(nnz(c)).
func (m *Matrix) ColSum(c int) float64 {
	if c < 0 || c >= m.n {
		return 0
	}
	var s float64
	for k := m.colPtr[c]; k < m.colPtr[c+1]; k++ {
		s += m.val[k]
	}

	return s
}

// SubsetSums computes, for every row r, the total weight from r toward the
// given set of target columns: dst[r] = Σ_{c ∈ cols} W[r][c].
// dst must have length n; it is zeroed before accumulation.
// This is the one bulk reduction the coloring engine performs, expressed as a
// gather-scatter over the chosen columns.
// Complexity: O(n + Σ_{c ∈ cols} nnz(c)).
func (m *Matrix) SubsetSums(cols []int32, dst []float64) {
	for r := range dst {
		dst[r] = 0
	}
	for _, c := range cols {
		for k := m.colPtr[c]; k < m.colPtr[c+1]; k++ {
			dst[m.rowIdx[k]] += m.val[k]
		}
	}
}

// Transpose returns a new Matrix holding the reversed edges: T[r][c] = W[c][r].
// The result provides the incoming-direction weights of the original graph.
// Complexity: O(V + E) time and space (counting sort by row).
func (m *Matrix) Transpose() *Matrix {
	// Count entries per row of m — these become columns of the transpose.
	counts := make([]int, m.n+1)
	for _, r := range m.rowIdx {
		counts[r+1]++
	}
	for c := 0; c < m.n; c++ {
		counts[c+1] += counts[c]
	}

	rowIdx := make([]int32, len(m.rowIdx))
	val := make([]float64, len(m.val))
	next := make([]int, m.n)
	copy(next, counts[:m.n])

	// Walk columns in order so each transposed column comes out row-sorted.
	for c := 0; c < m.n; c++ {
		for k := m.colPtr[c]; k < m.colPtr[c+1]; k++ {
			r := m.rowIdx[k]
			w := next[r]
			rowIdx[w] = int32(c)
			val[w] = m.val[k]
			next[r]++
		}
	}

	return &Matrix{n: m.n, colPtr: counts, rowIdx: rowIdx, val: val}
}

// Binarize returns a copy in which every stored entry has weight 1,
// regardless of its original value. Zero-weight stored entries also become 1:
// presence of an edge, not its magnitude, is what unit weighting preserves.
// Complexity: O(V + E).
func (m *Matrix) Binarize() *Matrix {
	colPtr := make([]int, len(m.colPtr))
	copy(colPtr, m.colPtr)
	rowIdx := make([]int32, len(m.rowIdx))
	copy(rowIdx, m.rowIdx)
	val := make([]float64, len(m.val))
	for i := range val {
		val[i] = 1
	}

	return &Matrix{n: m.n, colPtr: colPtr, rowIdx: rowIdx, val: val}
}
