// Package updaters: per-district attribute tallies.
package updaters

import (
	"fmt"

	"github.com/katalvlaran/redistrict/partition"
)

// Tally sums one or more node attributes per district. The value type is
// map[partition.District]int64.
//
// Incremental: a flow moving node v from district a to b subtracts v's
// attribute values from a's total and adds them to b's — O(|flow|) per
// merge and, being integer arithmetic, exactly equal to a from-scratch
// recomputation.
type Tally struct {
	name  string
	attrs []string
}

// NewTally returns a Tally cached under name, summing the given node
// attributes (at least one).
func NewTally(name string, attrs ...string) *Tally {
	return &Tally{name: name, attrs: attrs}
}

// Name implements partition.Updater.
func (t *Tally) Name() string { return t.name }

// Requires declares the summed node attributes.
func (t *Tally) Requires() partition.Requirements {
	return partition.Requirements{NodeAttrs: t.attrs}
}

// FromScratch sums every node's attributes into its district's total.
// Complexity: O(V · |attrs|).
func (t *Tally) FromScratch(p *partition.Partition) (any, error) {
	totals := make(map[partition.District]int64, p.NumDistricts())
	// Seed every district so empty is distinguishable from zero.
	for _, d := range p.Districts() {
		totals[d] = 0
	}
	for _, attr := range t.attrs {
		values, err := p.Graph().NodeAttr(attr)
		if err != nil {
			return nil, err
		}
		for v, d := range p.Assignment().Labels() {
			totals[d] += values[v]
		}
	}

	return totals, nil
}

// FromFlow implements partition.Incremental by adjusting only the
// districts the flow touches.
// Complexity: O(|flow| · |attrs| + D) for the map copy.
func (t *Tally) FromFlow(parent *partition.Partition, flow partition.Flow, old any, p *partition.Partition) (any, error) {
	previous, ok := old.(map[partition.District]int64)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrBadCache, t.name, old)
	}
	totals := make(map[partition.District]int64, len(previous))
	for d, total := range previous {
		totals[d] = total
	}

	for _, attr := range t.attrs {
		values, err := p.Graph().NodeAttr(attr)
		if err != nil {
			return nil, err
		}
		for v, mv := range flow {
			totals[mv.From] -= values[v]
			totals[mv.To] += values[v]
		}
	}

	return totals, nil
}
