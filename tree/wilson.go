// Package tree: Wilson's algorithm for uniform random spanning trees.
package tree

import (
	"math/rand"

	"github.com/katalvlaran/redistrict/graph"
)

// Uniform draws a spanning tree of g uniformly at random over all
// spanning trees, using Wilson's algorithm (loop-erased random walks,
// a.k.a. cycle popping).
//
// Uniformity matters: the ReCom chain's stationary distribution is
// derived assuming the tree sampler is exactly uniform. A random DFS/BFS
// tree is not.
//
// Error Conditions:
//   - ErrGraphNil      : g is nil.
//   - ErrNilRand       : rng is nil.
//   - ErrDisconnected  : g has no spanning tree (checked up front; the
//     walk would otherwise never terminate).
//
// Steps:
//  1. Pick a root uniformly; mark it in-tree.
//  2. For each node not yet in the tree (ascending ID order), random-walk
//     until hitting the tree, recording the last exit edge of every
//     visited node (this implicitly erases loops).
//  3. Retrace the walk from the start node along the recorded exits,
//     attaching each node to the tree.
//  4. Derive Order by BFS from the root over the children lists.
//
// Complexity: expected O(mean commute time); O(V) extra memory.
func Uniform(g *graph.Graph, rng *rand.Rand) (*SpanningTree, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if !g.Connected() {
		return nil, ErrDisconnected
	}

	n := g.NumNodes()
	parent := make([]int, n)
	inTree := make([]bool, n)
	for v := 0; v < n; v++ {
		parent[v] = -1
	}

	// 1. Root.
	root := rng.Intn(n)
	inTree[root] = true

	// 2.-3. One loop-erased walk per missing node. Overwriting parent[u]
	// on revisits is the cycle popping: only the final exit survives.
	for start := 0; start < n; start++ {
		if inTree[start] {
			continue
		}
		for u := start; !inTree[u]; {
			nbrs := g.Neighbors(u)
			parent[u] = nbrs[rng.Intn(len(nbrs))]
			u = parent[u]
		}
		for u := start; !inTree[u]; u = parent[u] {
			inTree[u] = true
		}
	}

	// 4. Children lists in ascending child order keep Order reproducible.
	children := make([][]int, n)
	for v := 0; v < n; v++ {
		if parent[v] >= 0 {
			children[parent[v]] = append(children[parent[v]], v)
		}
	}
	order := make([]int, 0, n)
	queue := []int{root}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		queue = append(queue, children[v]...)
	}

	return &SpanningTree{Root: root, Parent: parent, Order: order}, nil
}
