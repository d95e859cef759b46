// Package qscolor computes quasi-stable colorings of directed, edge-weighted
// graphs: compact partitions of the node set into classes whose members carry
// nearly equal cross-class edge weight, in both directions.
//
// 🚀 What is a quasi-stable coloring?
//
//	A relaxation of classic stable (equitable) coloring: instead of demanding
//	that every node of class A have exactly equal weight toward class B, we
//	tolerate a bounded spread (max − min) per class pair. Iterative splitting
//	drives that spread down, yielding homogeneous groups usable for:
//	  • graph summarization & compression
//	  • coarse-grained (lifted) approximation of large systems
//	  • batching nodes with near-identical connectivity
//
// ✨ Key features:
//   - deterministic refinement: worst spread picks the split, ties favor
//     the outgoing direction, reruns are bit-identical
//   - incremental bookkeeping: a split repairs only the touched rows and
//     columns of the per-direction status matrices
//   - amortized growth: status backings start at 128 colors and double on
//     demand (arena with logical sub-extent)
//   - degenerate witnesses are skipped, not fatal (bounded fallback)
//   - parallel bulk reductions (WithWorkers) that never change results
//
// ⚙️ Usage:
//
//	import (
//	  "github.com/lvlgraph/qscolor/csr"
//	  "github.com/lvlgraph/qscolor/qscolor"
//	)
//
//	w, _ := csr.New(n, edges)
//	res, err := qscolor.Refine(w,
//	  qscolor.WithMaxColors(64),   // stop at 64 classes
//	  qscolor.WithTolerance(0.5),  // or once spread ≤ 0.5 both ways
//	)
//	// res.Partition — the color classes; res.QError — achieved spread
//
// Performance:
//
//   - Per split: O(V + touched-column nnz) neighbor repair plus
//     O(m · affected-members) max/min repair, m = current color count
//   - Memory:    O(V·m + m²) per direction at the current capacity
//
// See example_test.go for end-to-end scenarios.
package qscolor
