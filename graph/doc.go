// Package graph provides the immutable dual graph underlying every
// partition: a fixed set of nodes and undirected edges, per-node numeric
// attributes (population and similar tallies), and per-edge weights
// (shared-boundary lengths).
//
// What
//
//   - Build a Graph once from (numNodes, edges, attributes); it never
//     mutates afterwards, so chain replicas may share it freely.
//   - Nodes are dense integers 0..NumNodes()-1, usable as array indices.
//   - Neighbor and incident-edge lookup in O(1) per neighbor, with
//     deterministic (ascending) ordering.
//   - InducedSubgraph extracts the subgraph over a node subset in time
//     proportional to the subset and its incident edges, not to |V|.
//
// Why
//
//   - The ReCom proposal repeatedly extracts two-district subgraphs and
//     walks adjacency; both must be cheap and reproducible.
//   - Immutability makes the "parent partition remains valid" invariant
//     free: no locks, no defensive copies on the read path.
//
// Determinism
//
//	Edges are normalized (U < V) and sorted, adjacency lists are sorted
//	ascending, and attribute storage is positional. Every traversal over
//	a Graph visits nodes and edges in a reproducible order.
//
// Errors
//
//   - ErrMalformedGraph  if an edge references an unknown node, is a
//     self-loop or duplicate, or an attribute has the wrong length.
//   - ErrDisconnected    if WithRequireConnected is set and the graph is
//     not connected (spanning-tree proposals need connectivity).
//   - ErrUnknownAttr     if a requested node attribute was never declared.
//
// Complexity (V = |nodes|, E = |edges|)
//
//   - Build:            O(V + E log E) time, O(V + E) memory
//   - Neighbors/Degree: O(1)
//   - InducedSubgraph:  O(k log k + Σ deg(k)) for a k-node subset
package graph
