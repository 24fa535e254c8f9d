// Package chain: standard acceptance rules.
package chain

import (
	"math"

	"github.com/katalvlaran/redistrict/partition"
)

// AlwaysAccept is the pure rejection-sampling rule: every candidate that
// survived the constraints is accepted with probability 1.
func AlwaysAccept(current, candidate *partition.Partition) float64 { return 1 }

// Energy scores a Partition for Metropolis-Hastings acceptance; lower is
// better. The exact form is a policy choice of the caller; the driver
// only guarantees correct accept/reject mechanics for whatever energy is
// supplied.
type Energy func(p *partition.Partition) float64

// MetropolisHastings builds the standard acceptance rule for a target
// density ∝ exp(−beta·Energy): a candidate is accepted with probability
// min(1, exp(−beta·(E(candidate) − E(current)))). Downhill moves always
// pass; uphill moves pass with exponentially decaying probability.
func MetropolisHastings(energy Energy, beta float64) AcceptFunc {
	return func(current, candidate *partition.Partition) float64 {
		delta := energy(candidate) - energy(current)
		if delta <= 0 {
			return 1
		}

		return math.Exp(-beta * delta)
	}
}
