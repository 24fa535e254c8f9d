// Package graph: read-only accessors, connectivity, and induced subgraphs.
package graph

import (
	"fmt"
	"sort"
)

// NumNodes returns the number of nodes.
// Complexity: O(1).
func (g *Graph) NumNodes() int { return g.numNodes }

// NumEdges returns the number of undirected edges.
// Complexity: O(1).
func (g *Graph) NumEdges() int { return len(g.edges) }

// HasNode reports whether v is a valid node identifier.
// Complexity: O(1).
func (g *Graph) HasNode(v int) bool { return v >= 0 && v < g.numNodes }

// Degree returns the number of neighbors of v.
// v must be a valid node (see HasNode).
// Complexity: O(1).
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Neighbors returns the neighbor IDs of v in ascending order.
// The returned slice is shared internal state and must not be modified.
// v must be a valid node (see HasNode).
// Complexity: O(1).
func (g *Graph) Neighbors(v int) []int { return g.adj[v] }

// IncidentEdges returns, for node v, indices into Edges() of every edge
// touching v, in ascending index order. The returned slice is shared
// internal state and must not be modified.
// Complexity: O(1).
func (g *Graph) IncidentEdges(v int) []int { return g.incident[v] }

// Edges returns all edges, normalized (U < V) and sorted by (U, V).
// The returned slice is shared internal state and must not be modified.
// Complexity: O(1).
func (g *Graph) Edges() []Edge { return g.edges }

// Edge returns the edge at index i of Edges().
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// NodeAttr returns the per-node values of a declared attribute,
// positionally indexed by node ID. The returned slice is shared internal
// state and must not be modified.
// Returns ErrUnknownAttr if the attribute was never declared.
// Complexity: O(1).
func (g *Graph) NodeAttr(name string) ([]int64, error) {
	values, ok := g.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttr, name)
	}

	return values, nil
}

// AttrNames returns the declared node attribute names in sorted order.
// Complexity: O(A log A) for A attributes.
func (g *Graph) AttrNames() []string {
	names := make([]string, 0, len(g.attrs))
	for name := range g.attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Connected reports whether the graph consists of a single connected
// component, via BFS from node 0.
// Complexity: O(V + E).
func (g *Graph) Connected() bool {
	if g.numNodes == 0 {
		return false
	}
	visited := make([]bool, g.numNodes)
	queue := make([]int, 0, g.numNodes)
	visited[0] = true
	queue = append(queue, 0)
	seen := 1
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, nbr := range g.adj[v] {
			if !visited[nbr] {
				visited[nbr] = true
				seen++
				queue = append(queue, nbr)
			}
		}
	}

	return seen == g.numNodes
}

// ConnectedSubset reports whether the induced subgraph over the given
// node subset is connected. Runs BFS restricted to the subset without
// materializing the subgraph.
// Returns false for an empty subset; out-of-range nodes yield
// ErrNodeOutOfRange.
// Complexity: O(k + Σ deg) for a k-node subset.
func (g *Graph) ConnectedSubset(nodes []int) (bool, error) {
	if len(nodes) == 0 {
		return false, nil
	}
	inSet := make(map[int]bool, len(nodes))
	for _, v := range nodes {
		if !g.HasNode(v) {
			return false, fmt.Errorf("%w: %d", ErrNodeOutOfRange, v)
		}
		inSet[v] = true
	}

	visited := make(map[int]bool, len(inSet))
	queue := []int{nodes[0]}
	visited[nodes[0]] = true
	seen := 1
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, nbr := range g.adj[v] {
			if inSet[nbr] && !visited[nbr] {
				visited[nbr] = true
				seen++
				queue = append(queue, nbr)
			}
		}
	}

	return seen == len(inSet), nil
}

// InducedSubgraph extracts the subgraph over the given node subset.
//
// It returns the subgraph (with local node IDs 0..k-1, all attributes
// restricted and re-indexed) together with orig, the local→global node
// mapping (orig[local] = global ID, ascending).
//
// Error Conditions:
//   - ErrNodeOutOfRange  : a subset entry is not a node of g.
//   - ErrMalformedGraph  : the subset is empty or contains duplicates.
//
// Complexity: O(k log k + Σ deg(k)) — proportional to the subset, not |V|.
func (g *Graph) InducedSubgraph(nodes []int) (*Graph, []int, error) {
	if len(nodes) == 0 {
		return nil, nil, fmt.Errorf("%w: empty node subset", ErrMalformedGraph)
	}
	orig := append([]int(nil), nodes...)
	sort.Ints(orig)

	// Local index lookup; duplicates collapse and are rejected here.
	local := make(map[int]int, len(orig))
	for i, v := range orig {
		if !g.HasNode(v) {
			return nil, nil, fmt.Errorf("%w: %d", ErrNodeOutOfRange, v)
		}
		if i > 0 && orig[i-1] == v {
			return nil, nil, fmt.Errorf("%w: duplicate node %d in subset", ErrMalformedGraph, v)
		}
		local[v] = i
	}

	// Collect edges with both endpoints inside the subset. Each such edge
	// is incident to both endpoints; counting it only from its U side
	// visits it exactly once.
	var subEdges []Edge
	for _, v := range orig {
		for _, ei := range g.incident[v] {
			e := g.edges[ei]
			if e.U != v {
				continue
			}
			if lv, ok := local[e.V]; ok {
				subEdges = append(subEdges, Edge{U: local[v], V: lv, Weight: e.Weight})
			}
		}
	}

	// Restrict every attribute to the subset, positionally re-indexed.
	subOpts := make([]Option, 0, len(g.attrs))
	for name, values := range g.attrs {
		restricted := make([]int64, len(orig))
		for i, v := range orig {
			restricted[i] = values[v]
		}
		subOpts = append(subOpts, WithNodeAttr(name, restricted))
	}

	sub, err := Build(len(orig), subEdges, subOpts...)
	if err != nil {
		return nil, nil, err
	}

	return sub, orig, nil
}
