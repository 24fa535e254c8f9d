package chain_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/constraints"
	"github.com/katalvlaran/redistrict/graph"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/recom"
	"github.com/katalvlaran/redistrict/updaters"
)

// gridSeed builds a 3×3 unit-population grid split 5/4 by rows: nodes
// 0..4 in district 0, nodes 5..8 in district 1.
func gridSeed(t *testing.T) *partition.Partition {
	t.Helper()

	var edges []graph.Edge
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			v := y*3 + x
			if x+1 < 3 {
				edges = append(edges, graph.Edge{U: v, V: v + 1, Weight: 1})
			}
			if y+1 < 3 {
				edges = append(edges, graph.Edge{U: v, V: v + 3, Weight: 1})
			}
		}
	}
	g, err := graph.Build(9, edges,
		graph.WithNodeAttr("population", []int64{1, 1, 1, 1, 1, 1, 1, 1, 1}))
	require.NoError(t, err)

	p, err := partition.New(g, []partition.District{0, 0, 0, 0, 0, 1, 1, 1, 1},
		[]partition.Updater{
			updaters.NewTally("population", "population"),
			updaters.NewCutEdges(),
		})
	require.NoError(t, err)

	return p
}

func gridProposal(t *testing.T) chain.Proposal {
	t.Helper()

	proposal, err := recom.New("population", recom.WithEpsilon(0.2))
	require.NoError(t, err)

	return chain.Proposal(proposal)
}

func TestNewValidation(t *testing.T) {
	p := gridSeed(t)
	proposal := gridProposal(t)

	// Nil proposal.
	_, err := chain.New(nil, nil, nil, p, 10)
	require.ErrorIs(t, err, chain.ErrNilProposal)

	// Nil seed.
	_, err = chain.New(proposal, nil, nil, nil, 10)
	require.ErrorIs(t, err, chain.ErrNilPartition)

	// Non-positive budget.
	_, err = chain.New(proposal, nil, nil, p, 0)
	require.ErrorIs(t, err, chain.ErrBadSteps)

	// Valid arguments.
	_, err = chain.New(proposal, nil, nil, p, 10)
	require.NoError(t, err)
}

func TestNewRejectsInvalidSeed(t *testing.T) {
	// Eight nodes in a path, each its own district: four districts where
	// the constraint demands exactly two.
	var edges []graph.Edge
	for v := 0; v < 7; v++ {
		edges = append(edges, graph.Edge{U: v, V: v + 1, Weight: 1})
	}
	g, err := graph.Build(8, edges,
		graph.WithNodeAttr("population", []int64{1, 1, 1, 1, 1, 1, 1, 1}))
	require.NoError(t, err)
	p, err := partition.New(g,
		[]partition.District{0, 0, 1, 1, 2, 2, 3, 3},
		[]partition.Updater{
			updaters.NewTally("population", "population"),
			updaters.NewCutEdges(),
		})
	require.NoError(t, err)

	exactlyTwo := func(p *partition.Partition) bool { return p.NumDistricts() == 2 }
	validator := constraints.NewValidator(exactlyTwo)

	// The chain refuses to start from a state its own constraints reject.
	_, err = chain.New(gridProposal(t), validator.Valid, nil, p, 10)
	require.ErrorIs(t, err, chain.ErrInvalidSeed)
}

func TestRunPreservesInvariants(t *testing.T) {
	seed := gridSeed(t)

	popBound, err := constraints.WithinPercentOfIdealPopulation(seed, 0.25, "population")
	require.NoError(t, err)
	validator := constraints.NewValidator(popBound, constraints.Contiguous)

	c, err := chain.New(gridProposal(t), validator.Valid, nil, seed, 100,
		chain.WithSeed(1234))
	require.NoError(t, err)

	var emitted int
	for c.Next() {
		emitted++
		state := c.State()

		// Every emitted state honors the hard constraints.
		require.Equal(t, 2, state.NumDistricts())
		require.True(t, constraints.Contiguous(state))
		require.True(t, popBound(state))
	}
	require.NoError(t, c.Err())

	// The budget counts emitted states, seed included.
	assert.Equal(t, 100, emitted)
	stats := c.Stats()
	assert.Equal(t, 100, stats.Steps)
	assert.Equal(t, stats.Steps, 1+stats.Accepted+stats.SelfLoops,
		"every post-seed step either advances or self-loops")
}

func TestRunDeterminism(t *testing.T) {
	run := func() [][]partition.District {
		seed := gridSeed(t)
		c, err := chain.New(gridProposal(t), constraints.Contiguous, nil, seed, 50,
			chain.WithSeed(77))
		require.NoError(t, err)

		var states [][]partition.District
		for c.Next() {
			labels := c.State().Assignment().Labels()
			states = append(states, append([]partition.District(nil), labels...))
		}
		require.NoError(t, c.Err())

		return states
	}

	// Identical seeds replay the identical trajectory.
	assert.Equal(t, run(), run())
}

func TestSelfLoopOnRejection(t *testing.T) {
	seed := gridSeed(t)
	rejectAll := func(*partition.Partition) bool { return false }

	// The seed must still pass, so gate on the parent pointer: only the
	// seed has none.
	gate := func(p *partition.Partition) bool {
		return p.Parent() == nil || rejectAll(p)
	}

	c, err := chain.New(gridProposal(t), gate, nil, seed, 10, chain.WithSeed(5))
	require.NoError(t, err)

	var emitted int
	for c.Next() {
		emitted++
		// Rejected candidates re-emit the prior state.
		assert.Same(t, seed, c.State())
	}
	require.NoError(t, c.Err())
	require.Equal(t, 10, emitted)

	stats := c.Stats()
	assert.Equal(t, 0, stats.Accepted)
	assert.Equal(t, 9, stats.SelfLoops, "every post-seed step self-looped")
}

func TestContextCancellation(t *testing.T) {
	seed := gridSeed(t)
	ctx, cancel := context.WithCancel(context.Background())

	c, err := chain.New(gridProposal(t), nil, nil, seed, 1000,
		chain.WithSeed(2), chain.WithContext(ctx))
	require.NoError(t, err)

	// Advance a few steps, then cancel.
	for i := 0; i < 5; i++ {
		require.True(t, c.Next())
	}
	cancel()

	assert.False(t, c.Next(), "a canceled context stops the walk at the step boundary")
	require.ErrorIs(t, c.Err(), context.Canceled)
	assert.Equal(t, 5, c.Stats().Steps)
}

func TestAlwaysAccept(t *testing.T) {
	// AlwaysAccept returns certainty regardless of the pair.
	assert.Equal(t, 1.0, chain.AlwaysAccept(nil, nil))
}

func TestMetropolisHastings(t *testing.T) {
	seed := gridSeed(t)
	flipped, err := seed.Merge(partition.Flow{
		2: {From: 0, To: 1},
	})
	require.NoError(t, err)

	// Energy = number of cut edges.
	energy := func(p *partition.Partition) float64 {
		cut, cerr := updaters.CutEdgeSet(p)
		require.NoError(t, cerr)

		return float64(len(cut))
	}

	accept := chain.MetropolisHastings(energy, 1.0)

	// Downhill and level moves are certain.
	assert.Equal(t, 1.0, accept(flipped, seed))
	assert.Equal(t, 1.0, accept(seed, seed))

	// Uphill moves decay as exp(-beta Δ).
	delta := energy(flipped) - energy(seed)
	require.Greater(t, delta, 0.0, "the flip must lengthen the boundary")
	assert.InDelta(t, math.Exp(-delta), accept(seed, flipped), 1e-12)

	// Larger beta penalizes the same uphill move harder.
	cold := chain.MetropolisHastings(energy, 4.0)
	assert.InDelta(t, math.Exp(-4*delta), cold(seed, flipped), 1e-12)
}

func TestMetropolisChainRuns(t *testing.T) {
	seed := gridSeed(t)
	energy := func(p *partition.Partition) float64 {
		cut, err := updaters.CutEdgeSet(p)
		if err != nil {
			return math.Inf(1)
		}

		return float64(len(cut))
	}

	c, err := chain.New(gridProposal(t), constraints.Contiguous,
		chain.MetropolisHastings(energy, 0.5), seed, 60, chain.WithSeed(8))
	require.NoError(t, err)

	for c.Next() {
		require.True(t, constraints.Contiguous(c.State()))
	}
	require.NoError(t, c.Err())
	assert.Equal(t, 60, c.Stats().Steps)
}

func TestStatsSelfLoopRate(t *testing.T) {
	// No post-seed steps yet.
	assert.Zero(t, chain.Stats{}.SelfLoopRate())

	s := chain.Stats{Steps: 11, Accepted: 6, SelfLoops: 4}
	assert.InDelta(t, 0.4, s.SelfLoopRate(), 1e-12)
}

func TestWithRandInstallsSource(t *testing.T) {
	seed := gridSeed(t)
	c1, err := chain.New(gridProposal(t), nil, nil, seed, 20,
		chain.WithRand(rand.New(rand.NewSource(31))))
	require.NoError(t, err)
	c2, err := chain.New(gridProposal(t), nil, nil, gridSeed(t), 20,
		chain.WithSeed(31))
	require.NoError(t, err)

	// WithRand(NewSource(s)) and WithSeed(s) walk identically.
	for c1.Next() {
		require.True(t, c2.Next())
		assert.Equal(t, c2.State().Assignment().Labels(), c1.State().Assignment().Labels())
	}
	assert.False(t, c2.Next())
}
