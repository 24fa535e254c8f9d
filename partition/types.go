// Package partition declares District, Move, Flow, the Updater contract,
// and the sentinel errors shared by Partition construction and Merge.
package partition

import (
	"errors"
	"sort"
)

// Sentinel errors for partition construction and merging.
var (
	// ErrNilGraph indicates a nil *graph.Graph was passed to New.
	ErrNilGraph = errors.New("partition: graph is nil")

	// ErrInvalidAssignment indicates the label slice does not cover every
	// graph node exactly once (wrong length), or is empty.
	ErrInvalidAssignment = errors.New("partition: invalid assignment")

	// ErrInvalidFlow indicates a Flow entry whose declared old label does
	// not match the current Assignment, or which references an unknown
	// node. This is a caller-program bug (e.g. a stale flow applied to the
	// wrong generation), not a recoverable runtime condition.
	ErrInvalidFlow = errors.New("partition: invalid flow")

	// ErrDistrictCountChanged indicates a Flow that would empty an existing
	// district or introduce a new label. The district count is fixed for
	// the duration of a chain run.
	ErrDistrictCountChanged = errors.New("partition: flow changes district count")

	// ErrUpdaterConflict indicates two registered updaters share a name.
	ErrUpdaterConflict = errors.New("partition: duplicate updater name")

	// ErrUnresolvedDependency indicates an updater requirement — a node
	// attribute missing from the graph, or a dependency on an updater that
	// is not registered earlier in the list — that cannot be satisfied.
	ErrUnresolvedDependency = errors.New("partition: unresolved updater dependency")

	// ErrUnknownUpdater indicates a lookup of an updater name that was
	// never registered.
	ErrUnknownUpdater = errors.New("partition: unknown updater")
)

// District is a district label. Labels are small opaque integers; their
// set is fixed for the duration of a chain run.
type District int

// Move records one node's label change: From is the label before the
// flow, To the label after.
type Move struct {
	From District
	To   District
}

// Flow maps each changed node to its Move. A Flow describes a proposed
// assignment delta, so updaters can work in time proportional to the
// change rather than to the node count.
type Flow map[int]Move

// Nodes returns the changed node IDs in ascending order, for
// deterministic iteration over the (unordered) map.
func (f Flow) Nodes() []int {
	nodes := make([]int, 0, len(f))
	for v := range f {
		nodes = append(nodes, v)
	}
	sort.Ints(nodes)

	return nodes
}

// Requirements declares the data an updater reads, resolved once at
// Partition construction rather than at call time.
type Requirements struct {
	// NodeAttrs lists node attribute names that must be declared on the
	// graph (see graph.WithNodeAttr).
	NodeAttrs []string

	// Updaters lists updater names whose cached values this updater reads;
	// they must be registered earlier so their values are already current.
	Updaters []string
}

// Updater computes a named derived statistic of a Partition.
//
// FromScratch must be a pure function of the Partition. The returned
// value is cached on the Partition and must never be mutated afterwards
// by anyone, the updater included.
type Updater interface {
	// Name is the cache key; unique within a Partition.
	Name() string

	// Requires declares the updater's data dependencies.
	Requires() Requirements

	// FromScratch computes the value from the full Assignment.
	FromScratch(p *Partition) (any, error)
}

// Incremental is the optional capability of updating from a parent value
// plus a Flow. Merge prefers this path and falls back to FromScratch.
//
// FromFlow receives the parent Partition, the applied Flow, the parent's
// cached value, and the child Partition under construction (its
// Assignment and all earlier updaters' values are already current).
// Implementations must treat old as read-only and return a fresh value.
type Incremental interface {
	Updater

	FromFlow(parent *Partition, flow Flow, old any, p *Partition) (any, error)
}
