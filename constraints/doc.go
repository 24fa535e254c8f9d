// Package constraints provides the predicates that gate proposal
// acceptance: hard pass/fail constraints, soft bounded scores with a
// numeric margin, and the Validator that composes them.
//
// What
//
//   - Constraint — a pure predicate over a Partition; pass or fail.
//   - Margin     — a pure score over a Partition, for soft constraints
//     and Metropolis-style acceptance ratios that need continuous
//     feedback rather than a boolean.
//   - Validator  — logical AND of any number of Constraints. Evaluation
//     order is short-circuit but unobservable: constraints must be
//     side-effect-free and deterministic for a given Partition.
//   - WithinPercentOfIdealPopulation — rejects plans where any district
//     deviates from total/districts by more than the given fraction.
//   - Contiguous — rejects plans with an internally disconnected
//     district. Redundant under ReCom (tree splits are connected by
//     construction) but required for flip-style proposals, and kept as a
//     safety net.
//   - NoVanishingDistricts, DistrictsWithinTolerance, DeviationFromIdeal,
//     Bounds — the rest of the standard validity toolkit.
//
// Usage
//
//	isValid := constraints.NewValidator(
//	    constraints.Contiguous,
//	    popBound, // from WithinPercentOfIdealPopulation
//	)
//	ch, err := chain.New(proposal, isValid.Valid, chain.AlwaysAccept, seed, steps)
package constraints
