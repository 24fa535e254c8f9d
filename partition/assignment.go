// Package partition: the Assignment type and its copy-on-apply semantics.
package partition

import (
	"fmt"
	"sort"
)

// Assignment is a total mapping from graph nodes to District labels,
// together with a reverse index from districts to their (sorted) node
// lists. Assignments are immutable: apply produces a new Assignment and
// leaves the receiver untouched.
type Assignment struct {
	labels []District         // labels[node] = district
	parts  map[District][]int // district → sorted node IDs
}

// NewAssignment builds an Assignment from a label slice indexed by node
// ID. The slice is copied. Returns ErrInvalidAssignment if labels is
// empty.
// Complexity: O(V log V).
func NewAssignment(labels []District) (*Assignment, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrInvalidAssignment)
	}
	a := &Assignment{
		labels: append([]District(nil), labels...),
		parts:  make(map[District][]int),
	}
	// Node IDs ascend during this pass, so each part list is born sorted.
	for v, d := range a.labels {
		a.parts[d] = append(a.parts[d], v)
	}

	return a, nil
}

// Len returns the number of assigned nodes.
// Complexity: O(1).
func (a *Assignment) Len() int { return len(a.labels) }

// Label returns the district of node v.
// v must be a valid node ID.
// Complexity: O(1).
func (a *Assignment) Label(v int) District { return a.labels[v] }

// Labels returns the full node→district slice. Shared internal state;
// must not be modified.
// Complexity: O(1).
func (a *Assignment) Labels() []District { return a.labels }

// Part returns the sorted node IDs of district d (nil if d is not a
// label of this Assignment). Shared internal state; must not be modified.
// Complexity: O(1).
func (a *Assignment) Part(d District) []int { return a.parts[d] }

// Parts returns the district → sorted-node-IDs index. Shared internal
// state; must not be modified.
// Complexity: O(1).
func (a *Assignment) Parts() map[District][]int { return a.parts }

// NumDistricts returns the number of distinct labels.
// Complexity: O(1).
func (a *Assignment) NumDistricts() int { return len(a.parts) }

// Districts returns the distinct labels in ascending order.
// Complexity: O(D log D).
func (a *Assignment) Districts() []District {
	districts := make([]District, 0, len(a.parts))
	for d := range a.parts {
		districts = append(districts, d)
	}
	sort.Slice(districts, func(i, j int) bool { return districts[i] < districts[j] })

	return districts
}

// apply returns a new Assignment with the given Flow applied.
//
// Error Conditions:
//   - ErrInvalidFlow           : an entry references an unknown node or its
//     From label differs from the current one.
//   - ErrDistrictCountChanged  : the flow empties a district or moves a
//     node to a label that does not exist.
//
// Unchanged part slices are structurally shared with the receiver;
// only the districts touched by the flow are rebuilt.
// Complexity: O(V + affected parts).
func (a *Assignment) apply(flow Flow) (*Assignment, error) {
	// Validate before allocating anything.
	for v, mv := range flow {
		if v < 0 || v >= len(a.labels) {
			return nil, fmt.Errorf("%w: unknown node %d", ErrInvalidFlow, v)
		}
		if a.labels[v] != mv.From {
			return nil, fmt.Errorf("%w: node %d is in district %d, flow claims %d",
				ErrInvalidFlow, v, a.labels[v], mv.From)
		}
		if _, ok := a.parts[mv.To]; !ok {
			return nil, fmt.Errorf("%w: flow introduces district %d",
				ErrDistrictCountChanged, mv.To)
		}
	}

	next := &Assignment{
		labels: append([]District(nil), a.labels...),
		parts:  make(map[District][]int, len(a.parts)),
	}
	// Districts not touched by the flow keep their part slices verbatim.
	touched := make(map[District]bool, len(flow)*2)
	for _, mv := range flow {
		touched[mv.From] = true
		touched[mv.To] = true
	}
	for d, nodes := range a.parts {
		if !touched[d] {
			next.parts[d] = nodes
		}
	}

	for v, mv := range flow {
		next.labels[v] = mv.To
	}
	// Rebuild the touched parts by a single scan of their member nodes.
	for d := range touched {
		var members []int
		for _, v := range a.parts[d] {
			if next.labels[v] == d {
				members = append(members, v)
			}
		}
		for v, mv := range flow {
			if mv.To == d && mv.From != d {
				members = append(members, v)
			}
		}
		if len(members) == 0 {
			return nil, fmt.Errorf("%w: flow empties district %d",
				ErrDistrictCountChanged, d)
		}
		sort.Ints(members)
		next.parts[d] = members
	}

	return next, nil
}
