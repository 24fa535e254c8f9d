// Package tree: Kirchhoff's matrix-tree theorem.
package tree

import (
	"math"

	"github.com/katalvlaran/redistrict/graph"
)

// Count returns the number of spanning trees of g, via Kirchhoff's
// matrix-tree theorem: the determinant of any (n-1)×(n-1) principal
// minor of the graph Laplacian.
//
// The determinant is evaluated in float64 with partial pivoting, so the
// result is exact for the small graphs it is meant for (district
// subgraphs, sampler-uniformity fixtures) and approximate once counts
// approach 2^53. A disconnected graph yields 0.
//
// Error Conditions:
//   - ErrGraphNil : g is nil.
//
// Complexity: O(V³) time, O(V²) memory.
func Count(g *graph.Graph) (float64, error) {
	if g == nil {
		return 0, ErrGraphNil
	}
	n := g.NumNodes()
	if n == 1 {
		// A single node has exactly one (empty) spanning tree.
		return 1, nil
	}

	// Laplacian minor: drop the last row and column.
	m := n - 1
	lap := make([][]float64, m)
	for i := 0; i < m; i++ {
		lap[i] = make([]float64, m)
		lap[i][i] = float64(g.Degree(i))
	}
	for _, e := range g.Edges() {
		if e.U < m && e.V < m {
			lap[e.U][e.V]--
			lap[e.V][e.U]--
		}
	}

	// Gaussian elimination with partial pivoting; det = ± product of pivots.
	det := 1.0
	for col := 0; col < m; col++ {
		pivot := col
		for row := col + 1; row < m; row++ {
			if math.Abs(lap[row][col]) > math.Abs(lap[pivot][col]) {
				pivot = row
			}
		}
		if lap[pivot][col] == 0 {
			// Singular Laplacian minor: no spanning tree exists.
			return 0, nil
		}
		if pivot != col {
			lap[pivot], lap[col] = lap[col], lap[pivot]
			det = -det
		}
		det *= lap[col][col]
		for row := col + 1; row < m; row++ {
			factor := lap[row][col] / lap[col][col]
			for k := col; k < m; k++ {
				lap[row][k] -= factor * lap[col][k]
			}
		}
	}

	// Counts are integers; eliminate float noise before returning.
	return math.Round(math.Abs(det)), nil
}
