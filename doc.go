// Package qscolor is an in-memory toolkit for summarizing large directed,
// edge-weighted graphs through quasi-stable coloring — partitioning nodes
// into classes whose members look alike to the rest of the graph.
//
// 🚀 What is qscolor?
//
//	A small, focused library that brings together:
//		• csr/     — immutable column-compressed sparse weight matrices:
//		             edge-list ingestion, transposition, subset reductions
//		• qscolor/ — the refinement engine: witness selection, mean-threshold
//		             splitting, incremental status repair, stopping rules
//		• cmd/     — a CLI driver for edge-list files
//
// ✨ Why choose qscolor?
//
//   - Deterministic – identical inputs yield bit-identical partitions,
//     regardless of worker count
//   - Incremental – each split repairs only the rows and columns it touched
//   - Honest errors – typed sentinels for every recoverable condition,
//     panics reserved for structural invariant violations
//   - Observable – inject a logger and watch spread fall as colors grow
//
// Quick ASCII example:
//
//	    0 ──1──▶ 1
//	    │5       │1
//	    ▼        ▼
//	    2 ◀──5── 3
//
//	two heavy senders, one light sender, one pure sink — four classes.
//
// Dive into qscolor/example_test.go for runnable scenarios.
//
//	go get github.com/lvlgraph/qscolor
package qscolor
