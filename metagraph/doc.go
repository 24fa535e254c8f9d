// Package metagraph explores the neighborhood of a partition in the
// metagraph of districting plans: the graph whose vertices are plans and
// whose edges connect plans one single-node flip apart.
//
// What:
//
//   - CutEdgeFlips enumerates every one-node Flow across a cut edge.
//   - ValidFlips filters those flows by a validity predicate evaluated
//     on the flipped plan.
//   - ValidStatesOneFlipAway materializes the valid neighboring plans
//     themselves.
//
// Why:
//
//   - Exhaustive one-flip neighborhoods are how small chains are checked
//     against ground truth: a walk can only ever move to a state this
//     package enumerates.
//   - Degree-of-freedom diagnostics (how many legal moves exist from a
//     plan) come straight from the neighborhood size.
//
// Determinism:
//
//   - Flows are enumerated in ascending cut-edge order, each edge's U
//     orientation before its V orientation.
//
// Edge cases: flips that would empty their donor district are not plan
// neighbors (the district count is fixed) and are skipped.
//
// Complexity: CutEdgeFlips O(cut edges); the valid variants additionally
// pay one Merge plus one predicate evaluation per candidate.
package metagraph
