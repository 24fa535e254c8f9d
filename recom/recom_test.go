package recom_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/constraints"
	"github.com/katalvlaran/redistrict/graph"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/recom"
	"github.com/katalvlaran/redistrict/tree"
	"github.com/katalvlaran/redistrict/updaters"
)

// cyclePartition builds a 4-node cycle with unit populations, split into
// districts {0,1} and {2,3}. The smallest graph on which ReCom can act.
func cyclePartition(t *testing.T) *partition.Partition {
	t.Helper()

	g, err := graph.Build(4, []graph.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 1},
		{U: 0, V: 3, Weight: 1},
	}, graph.WithNodeAttr("population", []int64{1, 1, 1, 1}))
	require.NoError(t, err)

	p, err := partition.New(g, []partition.District{0, 0, 1, 1}, []partition.Updater{
		updaters.NewTally("population", "population"),
		updaters.NewCutEdges(),
	})
	require.NoError(t, err)

	return p
}

// gridStripes builds a w×h unit-population grid partitioned into vertical
// stripes of width w/parts.
func gridStripes(t *testing.T, w, h, parts int) *partition.Partition {
	t.Helper()

	var edges []graph.Edge
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := y*w + x
			if x+1 < w {
				edges = append(edges, graph.Edge{U: v, V: v + 1, Weight: 1})
			}
			if y+1 < h {
				edges = append(edges, graph.Edge{U: v, V: v + w, Weight: 1})
			}
		}
	}
	pops := make([]int64, w*h)
	for i := range pops {
		pops[i] = 1
	}
	g, err := graph.Build(w*h, edges, graph.WithNodeAttr("population", pops))
	require.NoError(t, err)

	stripe := w / parts
	labels := make([]partition.District, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := x / stripe
			if d >= parts {
				d = parts - 1
			}
			labels[y*w+x] = partition.District(d)
		}
	}
	p, err := partition.New(g, labels, []partition.Updater{
		updaters.NewTally("population", "population"),
		updaters.NewCutEdges(),
	})
	require.NoError(t, err)

	return p
}

func TestNewValidation(t *testing.T) {
	// Empty population attribute.
	_, err := recom.New("")
	require.ErrorIs(t, err, recom.ErrBadConfig)

	// Negative tolerance.
	_, err = recom.New("population", recom.WithEpsilon(-0.1))
	require.ErrorIs(t, err, recom.ErrBadConfig)

	// Exhausted retry budget before the first attempt.
	_, err = recom.New("population", recom.WithMaxRetries(0))
	require.ErrorIs(t, err, recom.ErrBadConfig)

	// Unknown pair-selection mode.
	_, err = recom.New("population", recom.WithPairSelection("round-robin"))
	require.ErrorIs(t, err, recom.ErrBadConfig)

	// The default configuration is valid.
	_, err = recom.New("population")
	require.NoError(t, err)
}

func TestProposalOnCycle(t *testing.T) {
	p := cyclePartition(t)

	proposal, err := recom.New("population", recom.WithEpsilon(0.01))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 20; step++ {
		flow, ferr := proposal(p, rng)
		require.NoError(t, ferr, "a balanced 2+2 split always exists on the cycle")

		// Every flowed node must depart from its current label.
		labels := p.Assignment().Labels()
		for node, move := range flow {
			assert.Equal(t, labels[node], move.From, "flow origin must match the parent label")
			assert.NotEqual(t, move.From, move.To, "flow must actually move the node")
		}

		next, merr := p.Merge(flow)
		require.NoError(t, merr)

		// The step preserves the district count and the 2+2 balance.
		require.Equal(t, 2, next.NumDistricts())
		for _, d := range next.Districts() {
			assert.Len(t, next.Part(d), 2, "each district keeps exactly two nodes")
		}
		assert.True(t, constraints.Contiguous(next), "both halves of a tree cut are connected")

		p = next
	}
}

func TestProposalBalanceOnGrid(t *testing.T) {
	p := gridStripes(t, 6, 6, 2)

	proposal, err := recom.New("population", recom.WithEpsilon(0.1))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for step := 0; step < 30; step++ {
		flow, ferr := proposal(p, rng)
		require.NoError(t, ferr)
		next, merr := p.Merge(flow)
		require.NoError(t, merr)

		// Within ±10% of the ideal 18 nodes per district.
		totals, terr := updaters.TallyValue(next, "population")
		require.NoError(t, terr)
		for d, total := range totals {
			assert.GreaterOrEqual(t, float64(total), 0.9*18, "district %d too small", d)
			assert.LessOrEqual(t, float64(total), 1.1*18, "district %d too large", d)
		}
		assert.True(t, constraints.Contiguous(next))

		p = next
	}
}

func TestProposalPairUniform(t *testing.T) {
	p := gridStripes(t, 6, 6, 3)

	proposal, err := recom.New("population",
		recom.WithEpsilon(0.1), recom.WithPairSelection(recom.PairUniform))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	flow, err := proposal(p, rng)
	require.NoError(t, err)

	// Exactly two districts participate in the move.
	touched := make(map[partition.District]bool)
	for _, move := range flow {
		touched[move.From] = true
		touched[move.To] = true
	}
	assert.LessOrEqual(t, len(touched), 2, "a single step recombines one district pair")
}

func TestProposalDeterminism(t *testing.T) {
	proposal, err := recom.New("population", recom.WithEpsilon(0.1))
	require.NoError(t, err)

	p1 := gridStripes(t, 6, 6, 2)
	p2 := gridStripes(t, 6, 6, 2)

	flow1, err := proposal(p1, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	flow2, err := proposal(p2, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	// Identical seeds on identical states yield identical flows.
	assert.Equal(t, flow1, flow2)
}

func TestProposalSingleDistrict(t *testing.T) {
	g, err := graph.Build(3, []graph.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
	}, graph.WithNodeAttr("population", []int64{1, 1, 1}))
	require.NoError(t, err)
	p, err := partition.New(g, []partition.District{0, 0, 0}, []partition.Updater{
		updaters.NewTally("population", "population"),
		updaters.NewCutEdges(),
	})
	require.NoError(t, err)

	proposal, err := recom.New("population")
	require.NoError(t, err)

	// One district means no cut edges and nothing to recombine.
	_, err = proposal(p, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, recom.ErrNoCutEdges)
}

func TestProposalNoBalancedCut(t *testing.T) {
	// Populations 100 and 1 on a single edge: no split can sit within 5%
	// of the half-total 50.5.
	g, err := graph.Build(2, []graph.Edge{{U: 0, V: 1, Weight: 1}},
		graph.WithNodeAttr("population", []int64{100, 1}))
	require.NoError(t, err)
	p, err := partition.New(g, []partition.District{0, 1}, []partition.Updater{
		updaters.NewTally("population", "population"),
		updaters.NewCutEdges(),
	})
	require.NoError(t, err)

	proposal, err := recom.New("population", recom.WithMaxRetries(5))
	require.NoError(t, err)

	// The recoverable sentinel passes through for the driver to self-loop on.
	_, err = proposal(p, rand.New(rand.NewSource(3)))
	require.ErrorIs(t, err, tree.ErrNoValidCut)
}
