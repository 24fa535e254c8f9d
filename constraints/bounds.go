// Package constraints: soft bounded-score constraints.
package constraints

import "github.com/katalvlaran/redistrict/partition"

// Bounds is a soft constraint over a numeric score: the score must stay
// inside [Lower, Upper]. Unlike a hard Constraint it also exposes a
// continuous margin, which Metropolis-style acceptance can feed on.
type Bounds struct {
	// Score computes the bounded quantity.
	Score Margin

	// Lower and Upper delimit the admissible band (inclusive).
	Lower float64
	Upper float64
}

// NewBounds constructs a Bounds over the given score and band.
func NewBounds(score Margin, lower, upper float64) Bounds {
	return Bounds{Score: score, Lower: lower, Upper: upper}
}

// Valid reports whether the score lies inside the band.
func (b Bounds) Valid(p *partition.Partition) bool {
	s := b.Score(p)

	return s >= b.Lower && s <= b.Upper
}

// Margin returns the distance from the score to the nearest band edge:
// positive inside the band, negative outside. Zero sits exactly on an
// edge.
func (b Bounds) Margin(p *partition.Partition) float64 {
	s := b.Score(p)
	toLower := s - b.Lower
	toUpper := b.Upper - s
	if toLower < toUpper {
		return toLower
	}

	return toUpper
}

// Constraint adapts b into a hard Constraint.
func (b Bounds) Constraint() Constraint {
	return b.Valid
}
