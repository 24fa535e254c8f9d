package updaters_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/graph"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/updaters"
)

// buildTriangle constructs K3 with "stat" values 1, 2, 7.
func buildTriangle(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(3,
		[]graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}},
		graph.WithNodeAttr("stat", []int64{1, 2, 7}),
	)
	require.NoError(t, err)

	return g
}

// buildStripedGrid constructs a w×h grid with unit population, "D"/"R"
// vote attributes, unit edge weights, and a vertical two-district stripe
// assignment (left half district 0, right half district 1).
func buildStripedGrid(t *testing.T, w, h int) (*graph.Graph, []partition.District) {
	t.Helper()
	var edges []graph.Edge
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+1 < w {
				edges = append(edges, graph.Edge{U: y*w + x, V: y*w + x + 1, Weight: 1})
			}
			if y+1 < h {
				edges = append(edges, graph.Edge{U: y*w + x, V: (y+1)*w + x, Weight: 1})
			}
		}
	}
	n := w * h
	pop := make([]int64, n)
	dVotes := make([]int64, n)
	rVotes := make([]int64, n)
	labels := make([]partition.District, n)
	for i := 0; i < n; i++ {
		pop[i] = 1
		dVotes[i] = int64(i % 3)
		rVotes[i] = int64(i % 5)
		if i%w >= w/2 {
			labels[i] = 1
		}
	}
	g, err := graph.Build(n, edges,
		graph.WithNodeAttr("population", pop),
		graph.WithNodeAttr("D", dVotes),
		graph.WithNodeAttr("R", rVotes),
	)
	require.NoError(t, err)

	return g, labels
}

func standardUpdaters() []partition.Updater {
	return []partition.Updater{
		updaters.NewTally("population", "population"),
		updaters.NewTally("votes", "D", "R"),
		updaters.NewCutEdges(),
		updaters.NewCutEdgesByPart(),
		updaters.NewPerimeter(),
	}
}

func TestTally_FromScratch(t *testing.T) {
	p, err := partition.New(buildTriangle(t),
		[]partition.District{1, 1, 2},
		[]partition.Updater{updaters.NewTally("total_stat", "stat")},
	)
	require.NoError(t, err)

	totals, err := updaters.TallyValue(p, "total_stat")
	require.NoError(t, err)
	assert.Equal(t, map[partition.District]int64{1: 3, 2: 7}, totals)
}

func TestTally_UpdatesOnMerge(t *testing.T) {
	p, err := partition.New(buildTriangle(t),
		[]partition.District{1, 1, 2},
		[]partition.Updater{updaters.NewTally("total_stat", "stat")},
	)
	require.NoError(t, err)

	// Flip node 1 (stat=2) into district 2.
	child, err := p.Merge(partition.Flow{1: {From: 1, To: 2}})
	require.NoError(t, err)

	totals, err := updaters.TallyValue(child, "total_stat")
	require.NoError(t, err)
	assert.Equal(t, map[partition.District]int64{1: 1, 2: 9}, totals)

	// The parent's cached value is untouched.
	parentTotals, err := updaters.TallyValue(p, "total_stat")
	require.NoError(t, err)
	assert.Equal(t, map[partition.District]int64{1: 3, 2: 7}, parentTotals)
}

func TestTally_MultipleAttributes(t *testing.T) {
	g, labels := buildStripedGrid(t, 4, 3)
	p, err := partition.New(g, labels,
		[]partition.Updater{updaters.NewTally("votes", "D", "R")})
	require.NoError(t, err)

	dVotes, err := g.NodeAttr("D")
	require.NoError(t, err)
	rVotes, err := g.NodeAttr("R")
	require.NoError(t, err)

	var wantLeft int64
	for v, d := range labels {
		if d == 0 {
			wantLeft += dVotes[v] + rVotes[v]
		}
	}
	totals, err := updaters.TallyValue(p, "votes")
	require.NoError(t, err)
	assert.Equal(t, wantLeft, totals[0])
}

func TestTally_Conservation(t *testing.T) {
	g, labels := buildStripedGrid(t, 6, 6)
	p, err := partition.New(g, labels,
		[]partition.Updater{updaters.NewTally("population", "population")})
	require.NoError(t, err)

	totals, err := updaters.TallyValue(p, "population")
	require.NoError(t, err)
	var sum int64
	for _, total := range totals {
		sum += total
	}
	// Per-district sums must conserve the total population.
	assert.Equal(t, int64(g.NumNodes()), sum)
}

func TestCutEdges_Triangle(t *testing.T) {
	p, err := partition.New(buildTriangle(t),
		[]partition.District{1, 1, 2},
		[]partition.Updater{updaters.NewCutEdges()},
	)
	require.NoError(t, err)

	cut, err := updaters.CutEdgeSet(p)
	require.NoError(t, err)

	// Edges (0,2) and (1,2) cross the district boundary; (0,1) does not.
	edges := p.Graph().Edges()
	var crossing [][2]int
	for _, ei := range cut.Sorted() {
		crossing = append(crossing, [2]int{edges[ei].U, edges[ei].V})
	}
	assert.Equal(t, [][2]int{{0, 2}, {1, 2}}, crossing)
}

func TestCutEdgesByPart_Triangle(t *testing.T) {
	p, err := partition.New(buildTriangle(t),
		[]partition.District{1, 1, 2},
		[]partition.Updater{updaters.NewCutEdges(), updaters.NewCutEdgesByPart()},
	)
	require.NoError(t, err)

	raw, err := p.Value(updaters.CutEdgesByPartName)
	require.NoError(t, err)
	byPart, ok := raw.(map[partition.District]updaters.EdgeSet)
	require.True(t, ok)

	// Every cut edge touches both districts of this two-district plan.
	assert.Len(t, byPart[1], 2)
	assert.Len(t, byPart[2], 2)
}

func TestPerimeter_SumsCutEdgeWeights(t *testing.T) {
	// Square with weighted edges; vertical split {0,3} | {1,2}.
	//
	//	0 ──2── 1
	//	│       │
	//	5       7
	//	│       │
	//	3 ──3── 2
	g, err := graph.Build(4, []graph.Edge{
		{U: 0, V: 1, Weight: 2},
		{U: 1, V: 2, Weight: 7},
		{U: 2, V: 3, Weight: 3},
		{U: 0, V: 3, Weight: 5},
	})
	require.NoError(t, err)

	p, err := partition.New(g,
		[]partition.District{0, 1, 1, 0},
		[]partition.Updater{updaters.NewCutEdges(), updaters.NewPerimeter()},
	)
	require.NoError(t, err)

	totals, err := updaters.TallyValue(p, updaters.PerimeterName)
	require.NoError(t, err)
	// Cut edges are (0,1) w=2 and (2,3) w=3; both districts share them.
	assert.Equal(t, map[partition.District]int64{0: 5, 1: 5}, totals)
}

func TestNumSpanningTrees_PerDistrict(t *testing.T) {
	// Square cycle split into two 2-node districts: each induced subgraph
	// is a single edge with exactly one spanning tree.
	g, err := graph.Build(4, []graph.Edge{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 0, V: 3},
	})
	require.NoError(t, err)

	p, err := partition.New(g,
		[]partition.District{0, 0, 1, 1},
		[]partition.Updater{updaters.NewNumSpanningTrees()},
	)
	require.NoError(t, err)

	raw, err := p.Value(updaters.NumSpanningTreesName)
	require.NoError(t, err)
	counts, ok := raw.(map[partition.District]float64)
	require.True(t, ok)
	assert.Equal(t, map[partition.District]float64{0: 1, 1: 1}, counts)
}

// TestIncrementalMatchesFromScratch is the central equivalence property:
// for a sequence of randomized boundary flips applied via Merge, every
// incrementally maintained value must equal the value a fresh root
// Partition computes from scratch on the same assignment.
func TestIncrementalMatchesFromScratch(t *testing.T) {
	g, labels := buildStripedGrid(t, 6, 6)
	ups := standardUpdaters()

	current, err := partition.New(g, labels, ups)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(2018))
	steps := 0
	for steps < 50 {
		// Flip one endpoint of a random cut edge into the other district —
		// the smallest interesting flow.
		cut, cerr := updaters.CutEdgeSet(current)
		require.NoError(t, cerr)
		indices := cut.Sorted()
		require.NotEmpty(t, indices)
		e := g.Edge(indices[rng.Intn(len(indices))])

		mover, target := e.U, current.Assignment().Label(e.V)
		if rng.Intn(2) == 0 {
			mover, target = e.V, current.Assignment().Label(e.U)
		}
		from := current.Assignment().Label(mover)
		if len(current.Part(from)) == 1 {
			// Never empty a district; pick another edge next round.
			continue
		}

		child, merr := current.Merge(partition.Flow{mover: {From: from, To: target}})
		require.NoError(t, merr)

		fresh, ferr := partition.New(g, child.Assignment().Labels(), ups)
		require.NoError(t, ferr)

		for _, u := range ups {
			got, gerr := child.Value(u.Name())
			require.NoError(t, gerr)
			want, werr := fresh.Value(u.Name())
			require.NoError(t, werr)
			assert.Equalf(t, want, got, "updater %q diverged at step %d", u.Name(), steps)
		}

		current = child
		steps++
	}
}
