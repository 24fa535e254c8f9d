// Package updaters: cut-edge tracking.
package updaters

import (
	"fmt"

	"github.com/katalvlaran/redistrict/partition"
)

// CutEdges maintains the set of edges whose endpoints lie in different
// districts, cached under CutEdgesName as an EdgeSet of indices into
// graph.Edges().
//
// Incremental: an edge's cut status can only change if one of its
// endpoints changed district, so a merge re-examines just the edges
// incident to the flow's nodes.
type CutEdges struct{}

// NewCutEdges returns the cut-edges updater.
func NewCutEdges() *CutEdges { return &CutEdges{} }

// Name implements partition.Updater.
func (CutEdges) Name() string { return CutEdgesName }

// Requires declares no dependencies: cut edges derive from the assignment
// and the edge list alone.
func (CutEdges) Requires() partition.Requirements { return partition.Requirements{} }

// FromScratch scans every edge once.
// Complexity: O(E).
func (CutEdges) FromScratch(p *partition.Partition) (any, error) {
	labels := p.Assignment().Labels()
	set := make(EdgeSet)
	for ei, e := range p.Graph().Edges() {
		if labels[e.U] != labels[e.V] {
			set[ei] = struct{}{}
		}
	}

	return set, nil
}

// FromFlow implements partition.Incremental: clone the parent set, then
// refresh membership of every edge touching a changed node.
// Complexity: O(cut + Σ deg(changed)).
func (CutEdges) FromFlow(parent *partition.Partition, flow partition.Flow, old any, p *partition.Partition) (any, error) {
	previous, ok := old.(EdgeSet)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrBadCache, CutEdgesName, old)
	}
	set := previous.clone()

	g := p.Graph()
	labels := p.Assignment().Labels()
	for v := range flow {
		for _, ei := range g.IncidentEdges(v) {
			e := g.Edge(ei)
			if labels[e.U] != labels[e.V] {
				set[ei] = struct{}{}
			} else {
				delete(set, ei)
			}
		}
	}

	return set, nil
}

// CutEdgesByPart indexes the cut edges by district: each cut edge appears
// in the sets of both endpoint districts. Cached under CutEdgesByPartName
// as a map[partition.District]EdgeSet.
//
// There is no incremental path: rebuilding from the (already incremental)
// CutEdges value costs O(cut), proportional to the boundary rather than
// to the node count, so a delta version would buy nothing.
type CutEdgesByPart struct{}

// NewCutEdgesByPart returns the per-district cut-edge index.
func NewCutEdgesByPart() *CutEdgesByPart { return &CutEdgesByPart{} }

// Name implements partition.Updater.
func (CutEdgesByPart) Name() string { return CutEdgesByPartName }

// Requires declares the CutEdges dependency; it must be registered first.
func (CutEdgesByPart) Requires() partition.Requirements {
	return partition.Requirements{Updaters: []string{CutEdgesName}}
}

// FromScratch distributes the cached cut edges over their endpoint
// districts.
// Complexity: O(cut + D).
func (CutEdgesByPart) FromScratch(p *partition.Partition) (any, error) {
	cut, err := CutEdgeSet(p)
	if err != nil {
		return nil, err
	}

	labels := p.Assignment().Labels()
	byPart := make(map[partition.District]EdgeSet, p.NumDistricts())
	for _, d := range p.Districts() {
		byPart[d] = make(EdgeSet)
	}
	for ei := range cut {
		e := p.Graph().Edge(ei)
		byPart[labels[e.U]][ei] = struct{}{}
		byPart[labels[e.V]][ei] = struct{}{}
	}

	return byPart, nil
}
