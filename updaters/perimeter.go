// Package updaters: interior perimeter from cut-edge weights.
package updaters

import "github.com/katalvlaran/redistrict/partition"

// Perimeter sums, per district, the weights of its cut edges — the
// shared-boundary length with neighboring districts when edge weights
// carry boundary lengths. Exterior (state-border) boundary is not part
// of the dual graph and is not included. Cached under PerimeterName as a
// map[partition.District]int64.
//
// Rebuilt from the CutEdges value on every generation; like
// CutEdgesByPart, the cost is O(cut), already proportional to the
// boundary.
type Perimeter struct{}

// NewPerimeter returns the interior-perimeter updater.
func NewPerimeter() *Perimeter { return &Perimeter{} }

// Name implements partition.Updater.
func (Perimeter) Name() string { return PerimeterName }

// Requires declares the CutEdges dependency; it must be registered first.
func (Perimeter) Requires() partition.Requirements {
	return partition.Requirements{Updaters: []string{CutEdgesName}}
}

// FromScratch adds each cut edge's weight to both endpoint districts.
// Complexity: O(cut + D).
func (Perimeter) FromScratch(p *partition.Partition) (any, error) {
	cut, err := CutEdgeSet(p)
	if err != nil {
		return nil, err
	}

	labels := p.Assignment().Labels()
	totals := make(map[partition.District]int64, p.NumDistricts())
	for _, d := range p.Districts() {
		totals[d] = 0
	}
	for ei := range cut {
		e := p.Graph().Edge(ei)
		totals[labels[e.U]] += e.Weight
		totals[labels[e.V]] += e.Weight
	}

	return totals, nil
}
