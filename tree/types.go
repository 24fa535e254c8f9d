// Package tree declares the SpanningTree type, sentinel errors, and the
// functional options accepted by Bipartition and RecursivePartition.
package tree

import "errors"

// Sentinel errors for spanning-tree operations.
var (
	// ErrGraphNil is returned when a nil *graph.Graph is passed in.
	ErrGraphNil = errors.New("tree: graph is nil")

	// ErrDisconnected indicates the graph has no spanning tree.
	ErrDisconnected = errors.New("tree: graph is disconnected")

	// ErrNilRand indicates a nil randomness source; every draw must come
	// from a caller-owned, per-chain *rand.Rand for reproducibility.
	ErrNilRand = errors.New("tree: rand source is nil")

	// ErrBadPopulation indicates the population slice length differs from
	// the node count.
	ErrBadPopulation = errors.New("tree: population slice does not cover nodes")

	// ErrBadTarget indicates a non-positive population target, a negative
	// tolerance, or a part count below one.
	ErrBadTarget = errors.New("tree: invalid population target")

	// ErrNoValidCut indicates no balanced edge cut was found within the
	// retry budget. Recoverable: the chain driver converts it into a
	// self-loop rather than surfacing it.
	ErrNoValidCut = errors.New("tree: no balanced cut found")
)

// DefaultMaxAttempts is the number of spanning trees Bipartition draws
// before giving up with ErrNoValidCut.
const DefaultMaxAttempts = 100

// SpanningTree is a rooted spanning tree over nodes 0..n-1 of the graph
// it was drawn from.
type SpanningTree struct {
	// Root is the tree root.
	Root int

	// Parent maps each node to its parent; Parent[Root] == -1.
	Parent []int

	// Order lists all nodes root-first (each node appears after its
	// parent), in the deterministic order produced by a BFS over the
	// children lists. Reverse iteration visits children before parents,
	// which is what subtree accumulation needs.
	Order []int
}

// Len returns the number of nodes in the tree.
func (t *SpanningTree) Len() int { return len(t.Parent) }

// SubtreeNodes returns the nodes of the subtree rooted at v (v included),
// in ascending order.
// Complexity: O(V).
func (t *SpanningTree) SubtreeNodes(v int) []int {
	// Mark v's subtree by walking Order root-first: a node is inside iff
	// its parent is inside (or it is v itself).
	inside := make([]bool, len(t.Parent))
	inside[v] = true
	var nodes []int
	for _, u := range t.Order {
		if u != v && (t.Parent[u] < 0 || !inside[t.Parent[u]]) {
			continue
		}
		inside[u] = true
	}
	for u := 0; u < len(inside); u++ {
		if inside[u] {
			nodes = append(nodes, u)
		}
	}

	return nodes
}

// Cut identifies a candidate tree edge (Child, Parent[Child]) whose
// removal splits the tree into the subtree under Child and its
// complement.
type Cut struct {
	// Child is the lower endpoint: removing its parent edge detaches the
	// subtree rooted at Child.
	Child int

	// Parent is Child's tree parent, the other endpoint of the cut edge.
	Parent int

	// Pop is the total population of the detached subtree.
	Pop int64
}

// Option configures Bipartition and RecursivePartition.
type Option func(*Options)

// Options holds configurable parameters for tree bipartitioning.
type Options struct {
	// MaxAttempts bounds how many spanning trees are drawn before giving
	// up with ErrNoValidCut. Must be positive.
	MaxAttempts int

	// OneSided only requires the detached subtree to hit the target band,
	// leaving the remainder unconstrained. Used when peeling one district
	// at a time off a larger region (seed generation); the symmetric
	// two-sided check is what ReCom's two-district split needs.
	OneSided bool
}

// DefaultOptions returns Options with the two-sided balance check and the
// default retry budget.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: DefaultMaxAttempts,
		OneSided:    false,
	}
}

// WithMaxAttempts sets the spanning-tree retry budget (must be positive).
func WithMaxAttempts(n int) Option {
	return func(o *Options) { o.MaxAttempts = n }
}

// WithOneSidedCut toggles the one-sided balance check.
func WithOneSidedCut(oneSided bool) Option {
	return func(o *Options) { o.OneSided = oneSided }
}
