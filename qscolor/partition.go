// Package qscolor: the Partition type.
// A Partition is an ordered sequence of disjoint, non-empty node sets
// ("colors") covering all nodes 0..v-1. Colors are only ever appended or
// shrunk in place by a split; indices of existing colors never change and a
// color is never deleted.

package qscolor

import "fmt"

// Partition holds the current color classes of a refinement run.
// The zero value is not usable; construct with NewPartition.
type Partition struct {
	v      int       // total node count
	colors [][]int32 // colors[i] = node ids of color i, disjoint, non-empty
}

// NewPartition returns the trivial partition: one color containing all
// v nodes. Complexity: O(v).
func NewPartition(v int) *Partition {
	all := make([]int32, v)
	for i := range all {
		all[i] = int32(i)
	}

	return &Partition{v: v, colors: [][]int32{all}}
}

// Len returns the current number of colors.
func (p *Partition) Len() int { return len(p.colors) }

// NumNodes returns the total node count covered by the partition.
func (p *Partition) NumNodes() int { return p.v }

// Color returns the member node ids of color i.
// The returned slice is a view into internal state and must not be modified.
func (p *Partition) Color(i int) []int32 { return p.colors[i] }

// Sizes returns the member count of every color, in color order.
func (p *Partition) Sizes() []int {
	sizes := make([]int, len(p.colors))
	for i, c := range p.colors {
		sizes[i] = len(c)
	}

	return sizes
}

// Assignment returns the node→color mapping: out[u] is the index of the
// color containing node u. Complexity: O(v).
func (p *Partition) Assignment() []int {
	out := make([]int, p.v)
	for c, members := range p.colors {
		for _, u := range members {
			out[u] = c
		}
	}

	return out
}

// Split divides color i by the given predicate: members for which eject
// returns true move into a new color appended at index Len(); the rest stay
// at index i. Returns the new color's index.
//
// Fails with ErrDegenerateSplit — without mutating the partition — if either
// side would be empty, i.e. the predicate did not discriminate any member.
// Complexity: O(|colors[i]|).
func (p *Partition) Split(i int, eject func(node int32) bool) (int, error) {
	members := p.colors[i]
	retain := make([]int32, 0, len(members))
	ejected := make([]int32, 0)
	for _, u := range members {
		if eject(u) {
			ejected = append(ejected, u)
		} else {
			retain = append(retain, u)
		}
	}

	if len(retain) == 0 || len(ejected) == 0 {
		return 0, fmt.Errorf("Split(%d): retain=%d eject=%d: %w",
			i, len(retain), len(ejected), ErrDegenerateSplit)
	}

	p.colors[i] = retain
	p.colors = append(p.colors, ejected)

	return len(p.colors) - 1, nil
}

// Validate checks the structural invariants: every node appears in exactly
// one color and no color is empty. Intended for tests and debugging; the
// engine maintains these invariants by construction.
func (p *Partition) Validate() error {
	seen := make([]bool, p.v)
	total := 0
	for i, members := range p.colors {
		if len(members) == 0 {
			return fmt.Errorf("qscolor: color %d is empty", i)
		}
		for _, u := range members {
			if u < 0 || int(u) >= p.v {
				return fmt.Errorf("qscolor: color %d contains out-of-range node %d", i, u)
			}
			if seen[u] {
				return fmt.Errorf("qscolor: node %d appears in more than one color", u)
			}
			seen[u] = true
			total++
		}
	}
	if total != p.v {
		return fmt.Errorf("qscolor: partition covers %d of %d nodes", total, p.v)
	}

	return nil
}
