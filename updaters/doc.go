// Package updaters provides the standard derived statistics cached on a
// Partition: per-district attribute tallies, cut edges, boundary lengths,
// spanning-tree counts, and election results.
//
// What
//
//   - Tally            — per-district sums of one or more node attributes
//     (population, vote counts). Incremental: a flow adjusts only the
//     districts it touches.
//   - CutEdges         — the set of edges whose endpoints lie in different
//     districts. Incremental: only edges incident to changed nodes are
//     re-examined.
//   - CutEdgesByPart   — cut edges indexed by district; recomputed from
//     the CutEdges value (already proportional to the boundary).
//   - Perimeter        — per-district sum of cut-edge weights (interior
//     shared-boundary length).
//   - NumSpanningTrees — per-district spanning-tree count (Kirchhoff), a
//     compactness proxy; deliberately from-scratch-only, exercising the
//     engine's fallback path.
//   - Election         — per-party, per-district vote totals with derived
//     shares and district wins. Incremental, one Tally-style pass per
//     party.
//
// Equivalence
//
//	Every incremental implementation yields a value exactly equal to a
//	from-scratch recomputation on the merged assignment — integer
//	accumulation, no float drift. The property tests in this package
//	assert bit-for-bit equality across randomized flows.
//
// Dependencies
//
//	Updaters declare their inputs via partition.Requirements, resolved
//	when the root Partition is constructed: Tally("pop", "population")
//	fails fast if the graph lacks a "population" attribute, and
//	CutEdgesByPart requires CutEdges to be registered before it.
package updaters
