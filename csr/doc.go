// Package csr provides an immutable, column-compressed sparse matrix of
// nonnegative edge weights — the graph representation consumed by the
// quasi-stable coloring engine (package qscolor).
//
// 🚀 What is csr?
//
//	A directed, edge-weighted graph on nodes 0..n-1 stored in
//	compressed-sparse-column (CSC) form:
//		• colPtr — n+1 offsets delimiting each column's entries
//		• rowIdx — row index of every stored entry, sorted within a column
//		• val    — weight of every stored entry
//
// The column orientation is deliberate: the single reduction the coloring
// engine performs — "total weight from every node toward a set of target
// nodes" — is a gather-scatter over the target columns, which CSC serves
// with perfect locality.
//
// Core operations:
//
//	– New:        build from an edge list; duplicates accumulate.
//	– Transpose:  the reversed-edge matrix (incoming-direction weights).
//	– SubsetSums: dst[r] = Σ_{c ∈ cols} W[r][c] for every row r.
//	– Binarize:   unit-weight copy (every stored entry becomes 1).
//
// Complexity:
//
//	– New:        O(E log E) time, O(E) space (per-column sort + merge).
//	– Transpose:  O(V + E) time and space (counting sort by row).
//	– SubsetSums: O(Σ nnz(c) for c ∈ cols) time.
//
// Errors (sentinel, matched via errors.Is):
//
//	– ErrEmptyMatrix     if the requested node count is not positive.
//	– ErrIndexOutOfRange if an edge endpoint is outside [0, n).
//	– ErrBadWeight       if an edge weight is negative, NaN or ±Inf.
//
// A Matrix is immutable after construction and safe for concurrent reads.
package csr
