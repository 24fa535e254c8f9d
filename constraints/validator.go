// Package constraints: core types and the Validator composition.
package constraints

import (
	"errors"

	"github.com/katalvlaran/redistrict/partition"
)

// ErrNilPartition indicates a nil Partition passed to a constructor that
// derives its bounds from an initial state.
var ErrNilPartition = errors.New("constraints: partition is nil")

// Constraint is a hard constraint: a pure, deterministic predicate over
// a Partition. It must not mutate the Partition or retain references to
// its internals.
type Constraint func(p *partition.Partition) bool

// Margin is a soft score over a Partition, consumed by Bounds and by
// Metropolis-Hastings energy functions.
type Margin func(p *partition.Partition) float64

// Validator is the logical AND of a set of Constraints. Intended as the
// is-valid parameter of chain.New.
type Validator struct {
	constraints []Constraint
}

// NewValidator composes the given constraints. A Validator with no
// constraints accepts everything.
func NewValidator(cs ...Constraint) Validator {
	return Validator{constraints: cs}
}

// Valid reports whether every constraint passes. Short-circuits on the
// first failure.
// Complexity: Σ constraint costs.
func (v Validator) Valid(p *partition.Partition) bool {
	for _, c := range v.constraints {
		if !c(p) {
			return false
		}
	}

	return true
}

// NoVanishingDistricts rejects any Partition in which a district lost
// its last node. Partition.Merge already enforces this invariant; the
// constraint remains for proposals built outside Merge and as a
// belt-and-braces check on seed states.
func NoVanishingDistricts(p *partition.Partition) bool {
	for _, nodes := range p.Assignment().Parts() {
		if len(nodes) == 0 {
			return false
		}
	}

	return true
}
