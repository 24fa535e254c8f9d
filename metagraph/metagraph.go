package metagraph

import (
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/updaters"
)

// CutEdgeFlips returns every single-node flow that moves one endpoint of
// a cut edge into the other endpoint's district, in ascending cut-edge
// order (U orientation first). Flips that would empty the donor district
// are skipped; duplicates are elided, so each (node, destination) move
// appears once however many cut edges induce it.
//
// Error Conditions:
//   - updaters.ErrBadCache / partition.ErrUnknownUpdater : the CutEdges
//     updater is missing or malformed.
//
// Complexity: O(cut edges).
func CutEdgeFlips(p *partition.Partition) ([]partition.Flow, error) {
	cut, err := updaters.CutEdgeSet(p)
	if err != nil {
		return nil, err
	}

	labels := p.Assignment().Labels()
	seen := make(map[[2]int]bool, 2*len(cut))
	flows := make([]partition.Flow, 0, 2*len(cut))
	add := func(node int, to partition.District) {
		key := [2]int{node, int(to)}
		if seen[key] || len(p.Part(labels[node])) < 2 {
			return
		}
		seen[key] = true
		flows = append(flows, partition.Flow{node: {From: labels[node], To: to}})
	}
	for _, ei := range cut.Sorted() {
		e := p.Graph().Edge(ei)
		add(e.U, labels[e.V])
		add(e.V, labels[e.U])
	}

	return flows, nil
}

// ValidFlips returns the subset of CutEdgeFlips whose flipped plan
// satisfies isValid.
func ValidFlips(p *partition.Partition, isValid func(*partition.Partition) bool) ([]partition.Flow, error) {
	flows, err := CutEdgeFlips(p)
	if err != nil {
		return nil, err
	}

	valid := flows[:0]
	for _, flow := range flows {
		candidate, merr := p.Merge(flow)
		if merr != nil {
			return nil, merr
		}
		if isValid == nil || isValid(candidate) {
			valid = append(valid, flow)
		}
	}

	return valid, nil
}

// ValidStatesOneFlipAway returns the neighboring plans themselves: one
// Partition per valid flip, each a child of p carrying its flow.
func ValidStatesOneFlipAway(p *partition.Partition, isValid func(*partition.Partition) bool) ([]*partition.Partition, error) {
	flows, err := CutEdgeFlips(p)
	if err != nil {
		return nil, err
	}

	var states []*partition.Partition
	for _, flow := range flows {
		candidate, merr := p.Merge(flow)
		if merr != nil {
			return nil, merr
		}
		if isValid == nil || isValid(candidate) {
			states = append(states, candidate)
		}
	}

	return states, nil
}
