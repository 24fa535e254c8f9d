package grid_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/grid"
	"github.com/katalvlaran/redistrict/partition"
)

// ExampleNew builds a 3×3 grid: 9 cells, 12 shared boundaries.
func ExampleNew() {
	g, err := grid.New(3, 3)
	if err != nil {
		fmt.Println("unexpected error:", err)
		return
	}
	fmt.Println(g.NumNodes(), g.NumEdges())
	// Output: 9 12
}

func TestNewRook(t *testing.T) {
	g, err := grid.New(3, 2)
	require.NoError(t, err)

	// 3×2 cells: 2 east edges per row × 2 rows, 1 south edge per column
	// × 3 columns.
	assert.Equal(t, 6, g.NumNodes())
	assert.Equal(t, 7, g.NumEdges())
	assert.True(t, g.Connected())

	// Unit populations by default.
	pops, err := g.NodeAttr("population")
	require.NoError(t, err)
	for _, p := range pops {
		assert.Equal(t, int64(1), p)
	}

	// Interior adjacency: cell (1,0) touches west, east, and south.
	assert.ElementsMatch(t, []int{0, 2, 4}, g.Neighbors(1))
}

func TestNewQueen(t *testing.T) {
	g, err := grid.New(2, 2)
	require.NoError(t, err)
	q, err := grid.New(2, 2, grid.WithAdjacency(grid.Queen))
	require.NoError(t, err)

	// Queen adds the two diagonals of the 2×2 square.
	assert.Equal(t, 4, g.NumEdges())
	assert.Equal(t, 6, q.NumEdges())
}

func TestNewValidation(t *testing.T) {
	// Degenerate dimensions.
	_, err := grid.New(0, 5)
	require.ErrorIs(t, err, grid.ErrBadDimensions)
	_, err = grid.New(5, -1)
	require.ErrorIs(t, err, grid.ErrBadDimensions)

	// Population slice must cover every cell.
	_, err = grid.New(2, 2, grid.WithPopulations([]int64{1, 2, 3}))
	require.ErrorIs(t, err, grid.ErrBadPopulations)

	// A correctly sized slice lands on the renamed attribute.
	g, err := grid.New(2, 2,
		grid.WithPopulations([]int64{5, 6, 7, 8}), grid.WithPopAttr("pop2020"))
	require.NoError(t, err)
	pops, err := g.NodeAttr("pop2020")
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6, 7, 8}, pops)
}

func TestIndexCoordinate(t *testing.T) {
	const w = 7
	for id := 0; id < w*3; id++ {
		x, y := grid.Coordinate(w, id)
		// Index and Coordinate are inverses.
		assert.Equal(t, id, grid.Index(w, x, y))
	}
	assert.Equal(t, 9, grid.Index(w, 2, 1))
}

func TestStripeLabels(t *testing.T) {
	labels, err := grid.StripeLabels(4, 2, 2)
	require.NoError(t, err)

	// Columns 0-1 form district 0, columns 2-3 district 1, on both rows.
	assert.Equal(t, []partition.District{0, 0, 1, 1, 0, 0, 1, 1}, labels)

	// Leftover columns widen the rightmost stripe.
	labels, err = grid.StripeLabels(5, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []partition.District{0, 0, 1, 1, 1}, labels)

	// More stripes than columns cannot work.
	_, err = grid.StripeLabels(2, 5, 3)
	require.ErrorIs(t, err, grid.ErrBadParts)
}

func TestBandLabels(t *testing.T) {
	labels, err := grid.BandLabels(2, 4, 2)
	require.NoError(t, err)

	// Rows 0-1 form district 0, rows 2-3 district 1.
	assert.Equal(t, []partition.District{0, 0, 0, 0, 1, 1, 1, 1}, labels)

	_, err = grid.BandLabels(5, 2, 0)
	require.ErrorIs(t, err, grid.ErrBadParts)
}
