// Package tree: tree bipartitioning and recursive seed partitioning.
package tree

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/redistrict/graph"
)

// Bipartition splits a connected graph into two pieces whose populations
// sit within epsilon of target, by drawing uniform spanning trees and
// searching each for a balanced cut.
//
// It returns the (ascending) node set of the detached piece; the
// complement is the other piece, and both are connected by construction
// (each is a subtree of a spanning tree).
//
// Error Conditions:
//   - ErrGraphNil / ErrNilRand / ErrDisconnected : from Uniform.
//   - ErrBadPopulation / ErrBadTarget            : invalid inputs.
//   - ErrNoValidCut : no drawn tree admitted a balanced cut within the
//     retry budget. Recoverable — callers treat it as a rejected proposal.
//
// Steps:
//  1. Draw a uniform spanning tree (Wilson).
//  2. Collect its balanced cuts in one O(V) traversal.
//  3. If any exist, pick one uniformly and return its subtree node set.
//  4. Otherwise resample, up to MaxAttempts trees.
//
// Complexity: O(MaxAttempts · (tree draw + V)).
func Bipartition(g *graph.Graph, pops []int64, target, epsilon float64, rng *rand.Rand, opts ...Option) ([]int, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts %d", ErrBadTarget, o.MaxAttempts)
	}

	for attempt := 0; attempt < o.MaxAttempts; attempt++ {
		t, err := Uniform(g, rng)
		if err != nil {
			return nil, err
		}
		cuts, err := BalancedCuts(t, pops, target, epsilon, o.OneSided)
		if err != nil {
			return nil, err
		}
		if len(cuts) == 0 {
			continue
		}
		cut := cuts[rng.Intn(len(cuts))]

		return t.SubtreeNodes(cut.Child), nil
	}

	return nil, fmt.Errorf("%w: after %d trees (target=%v epsilon=%v)",
		ErrNoValidCut, o.MaxAttempts, target, epsilon)
}

// RecursivePartition assigns every node of g to one of numParts labels
// 0..numParts-1, each within epsilon of the ideal population
// total/numParts, by peeling one district at a time with one-sided
// Bipartition cuts. The remainder after numParts-1 cuts becomes the last
// district.
//
// This is the seed-assignment collaborator: chains start from its output
// when no real-world plan is supplied.
//
// Error Conditions:
//   - ErrGraphNil / ErrNilRand / ErrDisconnected : invalid graph.
//   - ErrBadPopulation : attrName values missing (wrapped graph error) —
//     populations are read from the named node attribute.
//   - ErrBadTarget     : numParts < 1.
//   - ErrNoValidCut    : some peel found no balanced cut; retrying with a
//     different seed or a looser epsilon is the caller's call.
//
// Every produced district is connected: each is a subtree of a spanning
// tree of the still-unassigned region, and the remainder of a tree minus
// a subtree is itself a tree.
//
// Complexity: O(numParts · Bipartition).
func RecursivePartition(g *graph.Graph, numParts int, attrName string, epsilon float64, rng *rand.Rand, opts ...Option) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if numParts < 1 {
		return nil, fmt.Errorf("%w: numParts=%d", ErrBadTarget, numParts)
	}

	pops, err := g.NodeAttr(attrName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPopulation, err)
	}
	var total int64
	for _, p := range pops {
		total += p
	}
	ideal := float64(total) / float64(numParts)

	labels := make([]int, g.NumNodes())
	for v := range labels {
		labels[v] = numParts - 1 // remainder label; peels overwrite
	}

	// Unassigned region, peeled down one district per iteration.
	remaining := make([]int, g.NumNodes())
	for v := range remaining {
		remaining[v] = v
	}

	for part := 0; part < numParts-1; part++ {
		sub, orig, serr := g.InducedSubgraph(remaining)
		if serr != nil {
			return nil, serr
		}
		subPops := make([]int64, sub.NumNodes())
		for i, v := range orig {
			subPops[i] = pops[v]
		}

		side, berr := Bipartition(sub, subPops, ideal, epsilon, rng,
			append(opts, WithOneSidedCut(true))...)
		if berr != nil {
			return nil, fmt.Errorf("tree: peeling district %d: %w", part, berr)
		}

		peeled := make(map[int]bool, len(side))
		for _, local := range side {
			labels[orig[local]] = part
			peeled[orig[local]] = true
		}
		next := remaining[:0]
		for _, v := range remaining {
			if !peeled[v] {
				next = append(next, v)
			}
		}
		remaining = next
	}

	return labels, nil
}
