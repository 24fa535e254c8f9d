package recom

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/redistrict/graph"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/tree"
)

// SpectralOptions configures NewSpectral. Use DefaultSpectralOptions and
// the WithSpectral* helpers.
type SpectralOptions struct {
	// Normalized selects the normalized Laplacian (default) over the
	// combinatorial one.
	Normalized bool

	// RandomWeights replaces the stored edge weights with fresh uniform
	// draws on every proposal, decorrelating successive cuts on graphs
	// whose boundary weights are all equal.
	RandomWeights bool
}

// SpectralOption configures SpectralOptions.
type SpectralOption func(*SpectralOptions)

// DefaultSpectralOptions returns the standard configuration: normalized
// Laplacian, stored edge weights.
func DefaultSpectralOptions() SpectralOptions {
	return SpectralOptions{Normalized: true}
}

// WithCombinatorialLaplacian selects the unnormalized Laplacian D − W.
func WithCombinatorialLaplacian() SpectralOption {
	return func(o *SpectralOptions) { o.Normalized = false }
}

// WithRandomWeights randomizes the edge weights per proposal.
func WithRandomWeights() SpectralOption {
	return func(o *SpectralOptions) { o.RandomWeights = true }
}

// NewSpectral builds the spectral recombination Proposal: the merged
// district pair is split by the signs of the Fiedler vector (the
// eigenvector of the Laplacian's second-smallest eigenvalue) instead of
// a spanning-tree cut.
//
// Spectral cuts track the merged region's bottleneck rather than its
// population, so no balance is enforced here; population constraints
// gate acceptance in the driver, exactly as with any other proposal.
//
// Error Conditions of the returned Proposal:
//   - ErrNoCutEdges / ErrDisconnectedMerge : as in New.
//   - tree.ErrNoValidCut : the Fiedler signs put every node on one side
//     (recoverable; the driver self-loops).
//
// Complexity: O(V³) per proposal for the eigendecomposition, V the size
// of the merged pair.
func NewSpectral(opts ...SpectralOption) (Proposal, error) {
	o := DefaultSpectralOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return func(p *partition.Partition, rng *rand.Rand) (partition.Flow, error) {
		// 1. Adjacent district pair, weighted by shared boundary.
		d1, d2, err := choosePair(p, PairByCutEdges, rng)
		if err != nil {
			return nil, err
		}

		// 2. Merged subgraph over both districts' nodes.
		merged := make([]int, 0, len(p.Part(d1))+len(p.Part(d2)))
		merged = append(merged, p.Part(d1)...)
		merged = append(merged, p.Part(d2)...)
		sub, orig, err := p.Graph().InducedSubgraph(merged)
		if err != nil {
			return nil, fmt.Errorf("recom: extracting districts %d+%d: %w", d1, d2, err)
		}
		if !sub.Connected() {
			return nil, fmt.Errorf("%w: districts %d and %d", ErrDisconnectedMerge, d1, d2)
		}

		// 3. Laplacian of the merged region.
		n := sub.NumNodes()
		weights := make([]float64, sub.NumEdges())
		for i, e := range sub.Edges() {
			if o.RandomWeights {
				weights[i] = rng.Float64()
			} else {
				weights[i] = float64(e.Weight)
			}
		}
		lap := laplacian(n, sub.Edges(), weights, o.Normalized)

		// 4. Fiedler vector, signs decide the split: positive entries
		// join d2, the rest d1.
		fiedler := fiedlerVector(lap)
		side := make([]int, 0, n)
		for v := 0; v < n; v++ {
			if fiedler[v] <= 0 {
				side = append(side, v)
			}
		}
		if len(side) == 0 || len(side) == n {
			// Degenerate sign pattern; reject the step.
			return nil, fmt.Errorf("%w: spectral split left a side empty", tree.ErrNoValidCut)
		}

		return sideFlow(p, orig, side, d1, d2), nil
	}, nil
}

// laplacian assembles the dense (normalized) weighted Laplacian.
func laplacian(n int, edges []graph.Edge, weights []float64, normalized bool) [][]float64 {
	degree := make([]float64, n)
	for i, e := range edges {
		degree[e.U] += weights[i]
		degree[e.V] += weights[i]
	}

	lap := make([][]float64, n)
	for i := range lap {
		lap[i] = make([]float64, n)
	}
	if normalized {
		// I − D^{−1/2} W D^{−1/2}; isolated nodes cannot occur in a
		// connected merge.
		for v := 0; v < n; v++ {
			lap[v][v] = 1
		}
		for i, e := range edges {
			w := weights[i] / math.Sqrt(degree[e.U]*degree[e.V])
			lap[e.U][e.V] -= w
			lap[e.V][e.U] -= w
		}

		return lap
	}
	for v := 0; v < n; v++ {
		lap[v][v] = degree[v]
	}
	for i, e := range edges {
		lap[e.U][e.V] -= weights[i]
		lap[e.V][e.U] -= weights[i]
	}

	return lap
}

// fiedlerVector returns the eigenvector of a symmetric matrix's
// second-smallest eigenvalue, via cyclic Jacobi rotations.
// Complexity: O(V³) per sweep, a handful of sweeps to converge.
func fiedlerVector(a [][]float64) []float64 {
	n := len(a)
	values, vectors := jacobiEigen(a)

	// Rank the eigenvalues; ties are broken by index, deterministically.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return values[order[i]] < values[order[j]] })

	fiedler := make([]float64, n)
	for v := 0; v < n; v++ {
		fiedler[v] = vectors[v][order[1]]
	}

	return fiedler
}

// jacobiEigen diagonalizes a symmetric matrix in place, returning its
// eigenvalues and the matrix of column eigenvectors.
func jacobiEigen(a [][]float64) ([]float64, [][]float64) {
	const (
		maxSweeps = 64
		tolerance = 1e-12
	)
	n := len(a)

	v := make([][]float64, n)
	for i := range v {
		v[i] = make([]float64, n)
		v[i][i] = 1
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		var off float64
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += a[i][j] * a[i][j]
			}
		}
		if off < tolerance {
			break
		}

		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q]) < tolerance/float64(n*n) {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				for k := 0; k < n; k++ {
					akp, akq := a[k][p], a[k][q]
					a[k][p] = c*akp - s*akq
					a[k][q] = s*akp + c*akq
				}
				for k := 0; k < n; k++ {
					apk, aqk := a[p][k], a[q][k]
					a[p][k] = c*apk - s*aqk
					a[q][k] = s*apk + c*aqk
				}
				for k := 0; k < n; k++ {
					vkp, vkq := v[k][p], v[k][q]
					v[k][p] = c*vkp - s*vkq
					v[k][q] = s*vkp + c*vkq
				}
			}
		}
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = a[i][i]
	}

	return values, v
}
