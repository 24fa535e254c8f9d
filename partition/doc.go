// Package partition implements the Partition snapshot at the heart of the
// sampling engine: an immutable binding of a dual graph, a node→district
// Assignment, and a cache of updater outputs.
//
// What
//
//   - Assignment: a total mapping from every graph node to a District
//     label, with a districts→nodes reverse index (Parts).
//   - Flow: the minimal description of an assignment delta — the nodes
//     whose label changed, each with its old and new District.
//   - Updater: the contract for derived statistics. Every updater can
//     compute from scratch; those implementing the Incremental capability
//     also update from a parent value plus a Flow, in time proportional
//     to the change.
//   - Partition: New computes every updater from scratch; Merge applies a
//     Flow copy-on-write, recomputing updaters incrementally where
//     possible. The parent Partition is never mutated and remains valid,
//     so a rejected proposal costs nothing and alternative proposals may
//     be explored from the same state.
//
// Why
//
//	A Markov chain over districting plans visits millions of states that
//	differ in a handful of nodes. Updating statistics from the delta, and
//	keeping snapshots immutable, makes each step O(|change|) and makes
//	independent chain replicas safe with no locking (they share only the
//	Graph).
//
// Invariants
//
//   - Cache values are always consistent with the Partition's Assignment;
//     a Partition is never observable half-updated.
//   - Merge never changes the set of district labels: a Flow that would
//     empty a district or introduce a new label fails with
//     ErrDistrictCountChanged.
//   - Incremental results are exactly equal to a from-scratch
//     recomputation on the merged Assignment (integer accumulation; see
//     the equivalence tests in package updaters).
//
// Errors
//
//   - ErrInvalidAssignment     bad label slice at construction.
//   - ErrInvalidFlow           a Flow entry's old label does not match the
//     current Assignment (a caller bug: stale flow from a discarded state).
//   - ErrDistrictCountChanged  a Flow would create or destroy a district.
//   - ErrUpdaterConflict       duplicate updater names.
//   - ErrUnresolvedDependency  an updater requirement (node attribute or
//     earlier updater) cannot be satisfied at construction time.
//
// Complexity (V = |nodes|, F = |flow|)
//
//   - New:    O(V + Σ updater from-scratch)
//   - Merge:  O(V) for the assignment copy + O(F·deg + affected parts)
//     for incremental updaters (from-scratch fallback costs its own bound)
package partition
