package flip

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/updaters"
)

// Sentinel errors for flip proposals.
var (
	// ErrNoCutEdges indicates a partition with no cut edges: either a
	// single district or a missing CutEdges updater. Fatal: the chain
	// cannot move from such a state.
	ErrNoCutEdges = errors.New("flip: partition has no cut edges")

	// ErrNoValidFlip indicates that cut edges exist but every candidate
	// flip would empty its donor district. Fatal: the walk is frozen.
	ErrNoValidFlip = errors.New("flip: every flip would empty a district")
)

// move is one candidate flip: node leaves its district for to.
type move struct {
	node int
	to   partition.District
}

// Propose emits a one-node Flow moving a boundary node into an adjacent
// district. It has the chain-facing proposal shape and plugs into the
// driver directly.
//
// Steps:
//  1. Collect the cut edges (requires the CutEdges updater).
//  2. Enumerate candidate moves in ascending cut-edge order: each cut
//     edge contributes both orientations, skipping any whose donor
//     district would be left empty. A node on k cut edges appears k
//     times, so flips are weighted by boundary adjacency.
//  3. Draw one candidate uniformly.
//
// Error Conditions:
//   - ErrNoCutEdges  : no cut edges, or the CutEdges updater is missing.
//   - ErrNoValidFlip : candidates exist only as district-emptying moves.
//
// Complexity: O(cut edges) time and memory.
func Propose(p *partition.Partition, rng *rand.Rand) (partition.Flow, error) {
	cut, err := updaters.CutEdgeSet(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCutEdges, err)
	}
	if len(cut) == 0 {
		return nil, ErrNoCutEdges
	}

	labels := p.Assignment().Labels()
	moves := make([]move, 0, 2*len(cut))
	for _, ei := range cut.Sorted() {
		e := p.Graph().Edge(ei)
		if len(p.Part(labels[e.U])) > 1 {
			moves = append(moves, move{node: e.U, to: labels[e.V]})
		}
		if len(p.Part(labels[e.V])) > 1 {
			moves = append(moves, move{node: e.V, to: labels[e.U]})
		}
	}
	if len(moves) == 0 {
		return nil, ErrNoValidFlip
	}

	m := moves[rng.Intn(len(moves))]

	return partition.Flow{m.node: {From: labels[m.node], To: m.to}}, nil
}
