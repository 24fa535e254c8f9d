// Package graph: Build constructs and validates an immutable Graph.
package graph

import (
	"fmt"
	"sort"
)

// Build constructs a Graph over nodes 0..numNodes-1 with the given
// undirected edges and options.
//
// Error Conditions:
//   - ErrMalformedGraph : numNodes <= 0, an endpoint outside [0, numNodes),
//     a self-loop, a duplicate edge, or an attribute length mismatch.
//   - ErrDisconnected   : WithRequireConnected set and the graph is not
//     connected.
//
// Steps:
//  1. Apply options; validate every declared attribute has numNodes values.
//  2. Normalize each edge to U < V, rejecting loops and bad endpoints.
//  3. Sort edges by (U, V); reject duplicates (adjacent after sort).
//  4. Build sorted adjacency and incident-edge lists in one pass.
//  5. If required, verify connectivity by BFS from node 0.
//
// Complexity: O(V + E log E). Memory: O(V + E).
func Build(numNodes int, edges []Edge, opts ...Option) (*Graph, error) {
	// 1. Collect options.
	cfg := buildConfig{attrs: make(map[string][]int64)}
	for _, opt := range opts {
		opt(&cfg)
	}

	if numNodes <= 0 {
		return nil, fmt.Errorf("%w: numNodes=%d", ErrMalformedGraph, numNodes)
	}
	// Every attribute must cover every node, positionally.
	attrs := make(map[string][]int64, len(cfg.attrs))
	for name, values := range cfg.attrs {
		if len(values) != numNodes {
			return nil, fmt.Errorf("%w: attribute %q has %d values, want %d",
				ErrMalformedGraph, name, len(values), numNodes)
		}
		attrs[name] = append([]int64(nil), values...)
	}

	// 2. Normalize endpoints; loops cannot appear in a dual graph.
	normalized := make([]Edge, len(edges))
	for i, e := range edges {
		if e.U < 0 || e.U >= numNodes || e.V < 0 || e.V >= numNodes {
			return nil, fmt.Errorf("%w: edge (%d,%d) references unknown node",
				ErrMalformedGraph, e.U, e.V)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("%w: self-loop at node %d", ErrMalformedGraph, e.U)
		}
		if e.U > e.V {
			e.U, e.V = e.V, e.U
		}
		normalized[i] = e
	}

	// 3. Canonical edge order makes every downstream traversal reproducible.
	sort.Slice(normalized, func(i, j int) bool {
		if normalized[i].U != normalized[j].U {
			return normalized[i].U < normalized[j].U
		}

		return normalized[i].V < normalized[j].V
	})
	for i := 1; i < len(normalized); i++ {
		if normalized[i].U == normalized[i-1].U && normalized[i].V == normalized[i-1].V {
			return nil, fmt.Errorf("%w: duplicate edge (%d,%d)",
				ErrMalformedGraph, normalized[i].U, normalized[i].V)
		}
	}

	// 4. Adjacency and incident-edge lists share the sorted edge order, so
	//    neighbor iteration is ascending without further sorting per node.
	g := &Graph{
		numNodes: numNodes,
		edges:    normalized,
		adj:      make([][]int, numNodes),
		incident: make([][]int, numNodes),
		attrs:    attrs,
	}
	degree := make([]int, numNodes)
	for _, e := range normalized {
		degree[e.U]++
		degree[e.V]++
	}
	for v := 0; v < numNodes; v++ {
		g.adj[v] = make([]int, 0, degree[v])
		g.incident[v] = make([]int, 0, degree[v])
	}
	for i, e := range normalized {
		g.adj[e.U] = append(g.adj[e.U], e.V)
		g.adj[e.V] = append(g.adj[e.V], e.U)
		g.incident[e.U] = append(g.incident[e.U], i)
		g.incident[e.V] = append(g.incident[e.V], i)
	}
	for v := 0; v < numNodes; v++ {
		sort.Ints(g.adj[v])
		// incident[v] is already ascending by edge index; adj needed the sort
		// because edges touch v from both sides of the (U,V) ordering.
	}

	// 5. Spanning-tree proposals require one component.
	if cfg.requireConnected && !g.Connected() {
		return nil, ErrDisconnected
	}

	return g, nil
}
