// Package constraints: population-balance constraints.
package constraints

import (
	"fmt"

	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/updaters"
)

// WithinPercentOfIdealPopulation builds the standard population-balance
// constraint: every district's tally must lie within percent of the
// ideal (total/districts), both derived from the initial Partition.
//
// tallyName names a Tally updater that must be registered on initial
// (and on every Partition the constraint will see).
//
// Error Conditions:
//   - ErrNilPartition              : initial is nil.
//   - partition.ErrUnknownUpdater or updaters.ErrBadCache : the tally is
//     missing or of the wrong type on initial.
//
// The returned Constraint treats a missing tally at evaluation time as a
// failure rather than an error: constraints are pure predicates.
func WithinPercentOfIdealPopulation(initial *partition.Partition, percent float64, tallyName string) (Constraint, error) {
	if initial == nil {
		return nil, ErrNilPartition
	}
	totals, err := updaters.TallyValue(initial, tallyName)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, t := range totals {
		total += t
	}
	ideal := float64(total) / float64(len(totals))
	lower := (1 - percent) * ideal
	upper := (1 + percent) * ideal

	return func(p *partition.Partition) bool {
		current, verr := updaters.TallyValue(p, tallyName)
		if verr != nil {
			return false
		}
		for _, t := range current {
			if float64(t) < lower || float64(t) > upper {
				return false
			}
		}

		return true
	}, nil
}

// DeviationFromIdeal computes, per district, the signed deviation
// (tally - ideal) / ideal, where ideal is total/districts of p itself.
// Used to report how far a plan sits from exact population equality.
func DeviationFromIdeal(p *partition.Partition, tallyName string) (map[partition.District]float64, error) {
	totals, err := updaters.TallyValue(p, tallyName)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, t := range totals {
		total += t
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("constraints: tally %q has no districts", tallyName)
	}
	ideal := float64(total) / float64(len(totals))

	deviations := make(map[partition.District]float64, len(totals))
	for d, t := range totals {
		deviations[d] = (float64(t) - ideal) / ideal
	}

	return deviations, nil
}

// DistrictsWithinTolerance reports whether the spread between the
// largest and smallest district tallies stays within percentage of the
// smallest. Percentages above 1 are read as whole percents (10 → 0.1).
func DistrictsWithinTolerance(p *partition.Partition, tallyName string, percentage float64) (bool, error) {
	if percentage >= 1 {
		percentage *= 0.01
	}
	totals, err := updaters.TallyValue(p, tallyName)
	if err != nil {
		return false, err
	}

	first := true
	var minTotal, maxTotal int64
	for _, t := range totals {
		if first {
			minTotal, maxTotal = t, t
			first = false
			continue
		}
		if t < minTotal {
			minTotal = t
		}
		if t > maxTotal {
			maxTotal = t
		}
	}

	return float64(maxTotal-minTotal) <= percentage*float64(minTotal), nil
}
