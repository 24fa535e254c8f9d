// Package updaters declares shared value types, cache-key constants, and
// sentinel errors.
package updaters

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/redistrict/partition"
)

// Well-known cache keys for the fixed-name updaters.
const (
	// CutEdgesName keys the CutEdges value (an EdgeSet).
	CutEdgesName = "cut_edges"

	// CutEdgesByPartName keys the CutEdgesByPart value
	// (a map[partition.District]EdgeSet).
	CutEdgesByPartName = "cut_edges_by_part"

	// PerimeterName keys the Perimeter value (a map[partition.District]int64).
	PerimeterName = "perimeter"

	// NumSpanningTreesName keys the NumSpanningTrees value
	// (a map[partition.District]float64).
	NumSpanningTreesName = "num_spanning_trees"
)

// ErrBadCache indicates a cached value of an unexpected dynamic type —
// an updater registered under another updater's name, or a caller that
// mutated a cached value. Always a programming error.
var ErrBadCache = errors.New("updaters: cached value has unexpected type")

// EdgeSet is a set of edge indices into graph.Edges(). It is the value
// type of CutEdges. Cached EdgeSets are read-only: incremental updates
// clone before modifying.
type EdgeSet map[int]struct{}

// Has reports membership of edge index ei.
func (s EdgeSet) Has(ei int) bool {
	_, ok := s[ei]

	return ok
}

// Sorted returns the edge indices in ascending order, for deterministic
// iteration.
func (s EdgeSet) Sorted() []int {
	indices := make([]int, 0, len(s))
	for ei := range s {
		indices = append(indices, ei)
	}
	sort.Ints(indices)

	return indices
}

// clone returns an independent copy of s.
func (s EdgeSet) clone() EdgeSet {
	out := make(EdgeSet, len(s))
	for ei := range s {
		out[ei] = struct{}{}
	}

	return out
}

// TallyValue reads the cached value of a Tally (or Perimeter) updater.
// Returns partition.ErrUnknownUpdater or ErrBadCache as appropriate.
func TallyValue(p *partition.Partition, name string) (map[partition.District]int64, error) {
	raw, err := p.Value(name)
	if err != nil {
		return nil, err
	}
	totals, ok := raw.(map[partition.District]int64)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrBadCache, name, raw)
	}

	return totals, nil
}

// CutEdgeSet reads the cached CutEdges value.
func CutEdgeSet(p *partition.Partition) (EdgeSet, error) {
	raw, err := p.Value(CutEdgesName)
	if err != nil {
		return nil, err
	}
	set, ok := raw.(EdgeSet)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrBadCache, CutEdgesName, raw)
	}

	return set, nil
}
