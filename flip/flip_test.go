package flip_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/constraints"
	"github.com/katalvlaran/redistrict/flip"
	"github.com/katalvlaran/redistrict/grid"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/updaters"
)

// gridPartition builds a w×h unit-population grid with the given labels
// and the standard Tally + CutEdges updaters.
func gridPartition(t *testing.T, w, h int, labels []partition.District) *partition.Partition {
	t.Helper()

	g, err := grid.New(w, h)
	require.NoError(t, err)
	p, err := partition.New(g, labels, []partition.Updater{
		updaters.NewTally("population", "population"),
		updaters.NewCutEdges(),
	})
	require.NoError(t, err)

	return p
}

func TestProposeSingleNodeFlow(t *testing.T) {
	labels, err := grid.BandLabels(3, 3, 2)
	require.NoError(t, err)
	p := gridPartition(t, 3, 3, labels)

	rng := rand.New(rand.NewSource(4))
	for step := 0; step < 30; step++ {
		flow, ferr := flip.Propose(p, rng)
		require.NoError(t, ferr)
		require.Len(t, flow, 1, "a flip moves exactly one node")

		current := p.Assignment().Labels()
		for node, mv := range flow {
			assert.Equal(t, current[node], mv.From, "flow origin must match the current label")
			assert.NotEqual(t, mv.From, mv.To)

			// The destination district must sit just across the boundary.
			adjacent := false
			for _, nb := range p.Graph().Neighbors(node) {
				if current[nb] == mv.To {
					adjacent = true
				}
			}
			assert.True(t, adjacent, "a flipped node borders its destination district")
		}

		next, merr := p.Merge(flow)
		require.NoError(t, merr)
		require.Equal(t, 2, next.NumDistricts(), "flips never change the district count")
		p = next
	}
}

func TestFlipCanBreakContiguity(t *testing.T) {
	// 3×3 grid where node 1 bridges the two halves of district 0:
	//
	//	0 0 0
	//	0 1 0
	//	1 1 1
	//
	// Flipping node 1 into district 1 strands {0,3} from {2,5}.
	p := gridPartition(t, 3, 3, []partition.District{0, 0, 0, 0, 1, 0, 1, 1, 1})

	next, err := p.Merge(partition.Flow{1: {From: 0, To: 1}})
	require.NoError(t, err, "the merge itself is legal; only contiguity breaks")
	assert.False(t, constraints.Contiguous(next),
		"a single flip can disconnect the donor district")

	// Under the contiguity constraint a flip chain never emits such a
	// state: the validator, not the proposal, carries the invariant.
	c, err := chain.New(flip.Propose, constraints.Contiguous, nil, p, 200, chain.WithSeed(6))
	require.NoError(t, err)
	for c.Next() {
		require.True(t, constraints.Contiguous(c.State()))
		require.Equal(t, 2, c.State().NumDistricts())
	}
	require.NoError(t, c.Err())
	assert.Equal(t, 200, c.Stats().Steps)
}

func TestProposeNoCutEdges(t *testing.T) {
	p := gridPartition(t, 2, 2, []partition.District{0, 0, 0, 0})

	_, err := flip.Propose(p, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, flip.ErrNoCutEdges)
}

func TestProposeNoValidFlip(t *testing.T) {
	// Two singleton districts: every flip would empty its donor.
	p := gridPartition(t, 2, 1, []partition.District{0, 1})

	_, err := flip.Propose(p, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, flip.ErrNoValidFlip)
}

func TestProposeDeterminism(t *testing.T) {
	labels, err := grid.StripeLabels(4, 4, 2)
	require.NoError(t, err)

	p1 := gridPartition(t, 4, 4, labels)
	p2 := gridPartition(t, 4, 4, labels)

	flow1, err := flip.Propose(p1, rand.New(rand.NewSource(21)))
	require.NoError(t, err)
	flow2, err := flip.Propose(p2, rand.New(rand.NewSource(21)))
	require.NoError(t, err)

	// Identical seeds on identical states yield identical flips.
	assert.Equal(t, flow1, flow2)
}
