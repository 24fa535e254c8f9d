// Package graph defines the Graph and Edge types, sentinel errors, and
// the functional options accepted by Build.
package graph

import "errors"

// Sentinel errors for graph construction and lookup.
var (
	// ErrMalformedGraph indicates invalid construction input: a non-positive
	// node count, an edge endpoint outside [0, numNodes), a self-loop, a
	// duplicate edge, or a node attribute whose length differs from numNodes.
	ErrMalformedGraph = errors.New("graph: malformed graph")

	// ErrDisconnected indicates the graph is not connected while
	// WithRequireConnected was requested.
	ErrDisconnected = errors.New("graph: graph is disconnected")

	// ErrUnknownAttr indicates a node attribute name that was never declared
	// via WithNodeAttr.
	ErrUnknownAttr = errors.New("graph: unknown node attribute")

	// ErrNodeOutOfRange indicates a node identifier outside [0, NumNodes).
	ErrNodeOutOfRange = errors.New("graph: node out of range")
)

// Edge is an undirected edge between nodes U and V with an optional
// Weight (conventionally a shared-boundary length; 0 when unused).
// Build normalizes every edge so that U < V.
type Edge struct {
	// U is the smaller endpoint after normalization.
	U int

	// V is the larger endpoint after normalization.
	V int

	// Weight is the edge weight; proposals ignore it, perimeter-style
	// updaters sum it.
	Weight int64
}

// Other returns the endpoint of e opposite to node v.
// Callers must pass one of e.U or e.V.
func (e Edge) Other(v int) int {
	if v == e.U {
		return e.V
	}

	return e.U
}

// Option configures Build.
type Option func(*buildConfig)

// buildConfig accumulates Build options before validation.
type buildConfig struct {
	attrs            map[string][]int64
	requireConnected bool
}

// WithNodeAttr declares a per-node integer attribute (e.g. "population").
// values must have exactly numNodes entries; Build copies the slice.
func WithNodeAttr(name string, values []int64) Option {
	return func(c *buildConfig) {
		c.attrs[name] = values
	}
}

// WithRequireConnected makes Build fail with ErrDisconnected unless the
// graph is connected. Required whenever spanning-tree proposals will run.
func WithRequireConnected() Option {
	return func(c *buildConfig) {
		c.requireConnected = true
	}
}

// Graph is the immutable dual graph. All fields are fixed at Build time;
// accessor methods may return internal slices, which callers must treat
// as read-only.
type Graph struct {
	numNodes int
	edges    []Edge  // normalized (U < V), sorted by (U, V)
	adj      [][]int // adj[v] = neighbor IDs, ascending
	incident [][]int // incident[v] = indices into edges, ascending
	attrs    map[string][]int64
}
