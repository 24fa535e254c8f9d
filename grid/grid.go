package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/redistrict/graph"
	"github.com/katalvlaran/redistrict/partition"
)

// Sentinel errors for grid construction.
var (
	// ErrBadDimensions indicates a non-positive width or height.
	ErrBadDimensions = errors.New("grid: width and height must be positive")
	// ErrBadParts indicates a district count outside [1, cells-per-axis].
	ErrBadParts = errors.New("grid: invalid district count")
	// ErrBadPopulations indicates an explicit population slice whose
	// length differs from width*height.
	ErrBadPopulations = errors.New("grid: populations must cover every cell")
)

// Adjacency selects which cells count as neighbors.
type Adjacency int

const (
	// Rook connects orthogonal neighbors only: N, E, S, W.
	Rook Adjacency = iota
	// Queen additionally connects the four diagonals.
	Queen
)

// Options configures New. Use DefaultOptions and the With* helpers.
type Options struct {
	// PopAttr names the population node attribute (default "population").
	PopAttr string
	// Populations holds one value per cell in row-major order; nil means
	// unit population everywhere.
	Populations []int64
	// Adjacency is Rook (default) or Queen.
	Adjacency Adjacency
	// EdgeWeight is the shared-boundary weight on every edge (default 1).
	EdgeWeight int64
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the standard configuration: attribute
// "population", unit populations, rook adjacency, unit edge weights.
func DefaultOptions() Options {
	return Options{PopAttr: "population", Adjacency: Rook, EdgeWeight: 1}
}

// WithPopAttr renames the population attribute.
func WithPopAttr(name string) Option {
	return func(o *Options) { o.PopAttr = name }
}

// WithPopulations installs explicit per-cell populations (row-major,
// length width*height).
func WithPopulations(pops []int64) Option {
	return func(o *Options) { o.Populations = pops }
}

// WithAdjacency selects rook or queen connectivity.
func WithAdjacency(a Adjacency) Option {
	return func(o *Options) { o.Adjacency = a }
}

// WithEdgeWeight sets the weight stored on every edge.
func WithEdgeWeight(w int64) Option {
	return func(o *Options) { o.EdgeWeight = w }
}

// Index returns the row-major node ID of cell (x, y) on a grid of the
// given width.
func Index(width, x, y int) int { return y*width + x }

// Coordinate inverts Index: node ID back to (x, y).
func Coordinate(width, id int) (x, y int) { return id % width, id / width }

// New builds a width×height grid dual-graph.
//
// Steps:
//  1. Validate dimensions and the population slice.
//  2. Enumerate edges cell by cell, each toward its east and south
//     neighbor (and, under Queen, the two forward diagonals), so every
//     edge appears exactly once.
//  3. Hand off to graph.Build for normalization and attribute checks.
//
// Error Conditions:
//   - ErrBadDimensions  : width < 1 or height < 1.
//   - ErrBadPopulations : explicit populations of the wrong length.
//
// Complexity: O(width×height).
func New(width, height int, opts ...Option) (*graph.Graph, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// 1. Validation.
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	n := width * height
	pops := o.Populations
	if pops == nil {
		pops = make([]int64, n)
		for i := range pops {
			pops[i] = 1
		}
	} else if len(pops) != n {
		return nil, fmt.Errorf("%w: got %d values for %d cells", ErrBadPopulations, len(pops), n)
	}

	// 2. Edges, forward neighbors only.
	edges := make([]graph.Edge, 0, 2*n)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := Index(width, x, y)
			if x+1 < width {
				edges = append(edges, graph.Edge{U: v, V: v + 1, Weight: o.EdgeWeight})
			}
			if y+1 < height {
				edges = append(edges, graph.Edge{U: v, V: v + width, Weight: o.EdgeWeight})
			}
			if o.Adjacency == Queen && y+1 < height {
				if x+1 < width {
					edges = append(edges, graph.Edge{U: v, V: v + width + 1, Weight: o.EdgeWeight})
				}
				if x > 0 {
					edges = append(edges, graph.Edge{U: v, V: v + width - 1, Weight: o.EdgeWeight})
				}
			}
		}
	}

	// 3. Normalize and attach populations.
	return graph.Build(n, edges, graph.WithNodeAttr(o.PopAttr, pops))
}

// StripeLabels assigns a width×height grid to parts vertical stripes of
// near-equal width (leftover columns widen the rightmost stripe). Every
// stripe is contiguous under rook adjacency.
//
// Error Conditions:
//   - ErrBadParts : parts < 1 or parts > width.
func StripeLabels(width, height, parts int) ([]partition.District, error) {
	if parts < 1 || parts > width {
		return nil, fmt.Errorf("%w: %d stripes across width %d", ErrBadParts, parts, width)
	}

	stripe := width / parts
	labels := make([]partition.District, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := x / stripe
			if d >= parts {
				d = parts - 1
			}
			labels[Index(width, x, y)] = partition.District(d)
		}
	}

	return labels, nil
}

// BandLabels is StripeLabels rotated: parts horizontal bands of
// near-equal height.
//
// Error Conditions:
//   - ErrBadParts : parts < 1 or parts > height.
func BandLabels(width, height, parts int) ([]partition.District, error) {
	if parts < 1 || parts > height {
		return nil, fmt.Errorf("%w: %d bands across height %d", ErrBadParts, parts, height)
	}

	band := height / parts
	labels := make([]partition.District, width*height)
	for y := 0; y < height; y++ {
		d := y / band
		if d >= parts {
			d = parts - 1
		}
		for x := 0; x < width; x++ {
			labels[Index(width, x, y)] = partition.District(d)
		}
	}

	return labels, nil
}
