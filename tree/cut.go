// Package tree: balanced edge-cut search over a spanning tree.
package tree

import (
	"fmt"
	"math"
)

// BalancedCuts returns every tree edge whose removal splits t into
// pieces within epsilon of the population target.
//
// For each non-root node v, removing the edge (v, Parent[v]) detaches the
// subtree under v with population S(v). The cut qualifies when
//
//	|S(v) − target| ≤ epsilon·target
//
// and, unless oneSided is set, the complement also qualifies:
//
//	|(total − S(v)) − target| ≤ epsilon·target.
//
// The two-sided form is ReCom's balance condition with target = half of
// the merged population; the one-sided form serves seed generation,
// where only the detached district must hit the band.
//
// All subtree populations come from a single reverse-Order traversal, so
// the search is O(V) in total, not O(V) per candidate edge.
//
// Error Conditions:
//   - ErrBadPopulation : len(pops) != t.Len().
//   - ErrBadTarget     : target <= 0 or epsilon < 0.
//
// Cuts are returned in t.Order tree order, which is deterministic.
// Complexity: O(V) time and memory.
func BalancedCuts(t *SpanningTree, pops []int64, target, epsilon float64, oneSided bool) ([]Cut, error) {
	if len(pops) != t.Len() {
		return nil, fmt.Errorf("%w: %d values for %d nodes", ErrBadPopulation, len(pops), t.Len())
	}
	if target <= 0 || epsilon < 0 {
		return nil, fmt.Errorf("%w: target=%v epsilon=%v", ErrBadTarget, target, epsilon)
	}

	// Subtree sums: children precede parents in reverse Order.
	subPop := make([]int64, t.Len())
	copy(subPop, pops)
	var total int64
	for i := len(t.Order) - 1; i >= 0; i-- {
		v := t.Order[i]
		if t.Parent[v] >= 0 {
			subPop[t.Parent[v]] += subPop[v]
		} else {
			total = subPop[v]
		}
	}

	band := epsilon * target
	within := func(pop int64) bool {
		return math.Abs(float64(pop)-target) <= band
	}

	var cuts []Cut
	for _, v := range t.Order {
		if t.Parent[v] < 0 {
			continue
		}
		if !within(subPop[v]) {
			continue
		}
		if !oneSided && !within(total-subPop[v]) {
			continue
		}
		cuts = append(cuts, Cut{Child: v, Parent: t.Parent[v], Pop: subPop[v]})
	}

	return cuts, nil
}
