// Package partition: the Partition snapshot and its sole mutation
// primitive, Merge.
package partition

import (
	"fmt"

	"github.com/katalvlaran/redistrict/graph"
)

// Partition is an immutable snapshot of (Graph, Assignment, updater
// cache). The Graph is shared read-only across every generation; the
// Assignment and cache are exclusively owned and never mutated after the
// constructor returns.
type Partition struct {
	g          *graph.Graph
	assignment *Assignment
	updaters   []Updater // registration order; shared across generations

	cache  map[string]any
	parent *Partition // nil for a root partition
	flow   Flow       // flow that produced this partition; nil for a root
}

// New constructs a root Partition from a seed label slice (indexed by
// node ID) and computes every registered updater from scratch.
//
// Error Conditions:
//   - ErrNilGraph            : g is nil.
//   - ErrInvalidAssignment   : len(labels) != g.NumNodes().
//   - ErrUpdaterConflict     : two updaters share a name.
//   - ErrUnresolvedDependency: an updater requires a node attribute the
//     graph lacks, or an updater not registered earlier in the list.
//
// Updaters are evaluated in registration order, so an updater may read
// the cached values of those before it (declared via Requirements).
//
// Complexity: O(V log V) plus the from-scratch cost of each updater.
func New(g *graph.Graph, labels []District, updaters []Updater) (*Partition, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if len(labels) != g.NumNodes() {
		return nil, fmt.Errorf("%w: %d labels for %d nodes",
			ErrInvalidAssignment, len(labels), g.NumNodes())
	}
	assignment, err := NewAssignment(labels)
	if err != nil {
		return nil, err
	}

	// Resolve every updater's requirements once, before any computation.
	seen := make(map[string]bool, len(updaters))
	for _, u := range updaters {
		if seen[u.Name()] {
			return nil, fmt.Errorf("%w: %q", ErrUpdaterConflict, u.Name())
		}
		req := u.Requires()
		for _, attr := range req.NodeAttrs {
			if _, aerr := g.NodeAttr(attr); aerr != nil {
				return nil, fmt.Errorf("%w: updater %q needs node attribute %q",
					ErrUnresolvedDependency, u.Name(), attr)
			}
		}
		for _, dep := range req.Updaters {
			if !seen[dep] {
				return nil, fmt.Errorf("%w: updater %q needs updater %q registered before it",
					ErrUnresolvedDependency, u.Name(), dep)
			}
		}
		seen[u.Name()] = true
	}

	p := &Partition{
		g:          g,
		assignment: assignment,
		updaters:   updaters,
		cache:      make(map[string]any, len(updaters)),
	}
	for _, u := range updaters {
		value, uerr := u.FromScratch(p)
		if uerr != nil {
			return nil, fmt.Errorf("partition: updater %q from scratch: %w", u.Name(), uerr)
		}
		p.cache[u.Name()] = value
	}

	return p, nil
}

// Merge produces the child Partition obtained by applying flow to the
// Assignment and refreshing the updater cache — incrementally for
// updaters implementing Incremental, from scratch otherwise.
//
// The receiver is left untouched and remains fully valid: it may be
// retained as chain history, or used to retry an alternative proposal
// after this one is rejected.
//
// Error Conditions:
//   - ErrInvalidFlow           : flow does not match the current Assignment.
//   - ErrDistrictCountChanged  : flow would create or destroy a district.
//
// An empty flow is legal and yields a child identical to the parent.
// Complexity: O(V) + Σ updater incremental costs.
func (p *Partition) Merge(flow Flow) (*Partition, error) {
	assignment, err := p.assignment.apply(flow)
	if err != nil {
		return nil, err
	}

	child := &Partition{
		g:          p.g,
		assignment: assignment,
		updaters:   p.updaters,
		cache:      make(map[string]any, len(p.updaters)),
		parent:     p,
		flow:       flow,
	}
	for _, u := range p.updaters {
		var (
			value any
			uerr  error
		)
		if inc, ok := u.(Incremental); ok {
			value, uerr = inc.FromFlow(p, flow, p.cache[u.Name()], child)
		} else {
			value, uerr = u.FromScratch(child)
		}
		if uerr != nil {
			return nil, fmt.Errorf("partition: updater %q: %w", u.Name(), uerr)
		}
		child.cache[u.Name()] = value
	}

	return child, nil
}

// Graph returns the shared, read-only dual graph.
func (p *Partition) Graph() *graph.Graph { return p.g }

// Assignment returns the node→district assignment of this snapshot.
func (p *Partition) Assignment() *Assignment { return p.assignment }

// Parent returns the Partition this one was merged from, or nil for a
// root Partition.
func (p *Partition) Parent() *Partition { return p.parent }

// Flow returns the Flow that produced this Partition from its parent,
// or nil for a root Partition.
func (p *Partition) Flow() Flow { return p.flow }

// Value returns the cached output of the named updater.
// Returns ErrUnknownUpdater for names that were never registered.
func (p *Partition) Value(name string) (any, error) {
	value, ok := p.cache[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUpdater, name)
	}

	return value, nil
}

// HasUpdater reports whether an updater of the given name is registered.
func (p *Partition) HasUpdater(name string) bool {
	_, ok := p.cache[name]

	return ok
}

// NumDistricts returns the number of distinct district labels.
func (p *Partition) NumDistricts() int { return p.assignment.NumDistricts() }

// Districts returns the distinct district labels in ascending order.
func (p *Partition) Districts() []District { return p.assignment.Districts() }

// Part returns the sorted node IDs of district d. Shared internal state;
// must not be modified.
func (p *Partition) Part(d District) []int { return p.assignment.Part(d) }
