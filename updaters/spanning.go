// Package updaters: spanning-tree counts as a compactness proxy.
package updaters

import (
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/tree"
)

// NumSpanningTrees counts, per district, the spanning trees of the
// district's induced subgraph (Kirchhoff's theorem) — a compactness
// proxy: stringy districts admit few spanning trees, compact ones many.
// Cached under NumSpanningTreesName as a map[partition.District]float64.
//
// There is deliberately no incremental path — the determinant does not
// decompose over flows — so Merge falls back to FromScratch. At O(V³)
// per district this updater suits diagnostics and small graphs, not hot
// chain loops.
type NumSpanningTrees struct{}

// NewNumSpanningTrees returns the spanning-tree-count updater.
func NewNumSpanningTrees() *NumSpanningTrees { return &NumSpanningTrees{} }

// Name implements partition.Updater.
func (NumSpanningTrees) Name() string { return NumSpanningTreesName }

// Requires declares no dependencies.
func (NumSpanningTrees) Requires() partition.Requirements { return partition.Requirements{} }

// FromScratch evaluates the matrix-tree determinant on each district's
// induced subgraph.
// Complexity: O(Σ district V³).
func (NumSpanningTrees) FromScratch(p *partition.Partition) (any, error) {
	counts := make(map[partition.District]float64, p.NumDistricts())
	for _, d := range p.Districts() {
		sub, _, err := p.Graph().InducedSubgraph(p.Part(d))
		if err != nil {
			return nil, err
		}
		count, err := tree.Count(sub)
		if err != nil {
			return nil, err
		}
		counts[d] = count
	}

	return counts, nil
}
