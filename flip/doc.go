// Package flip implements the single-node boundary flip proposal: one
// endpoint of a randomly chosen cut edge moves into its neighbor's
// district.
//
// What:
//
//   - Propose picks a cut edge (weighted by boundary adjacency), picks
//     an orientation, and emits a one-node Flow moving that endpoint
//     across the boundary.
//   - Flips that would empty the donor district are never proposed, so
//     the district count is invariant without driver intervention.
//
// Why:
//
//   - Flip chains are the classic baseline walk over districting plans:
//     cheap per step, slow to mix, and a useful contrast to
//     recombination when studying ensemble behavior.
//   - Unlike recombination, a flip can disconnect the donor district,
//     which makes the contiguity constraint load-bearing rather than a
//     safety net.
//
// Determinism:
//
//   - Candidate moves are enumerated in ascending cut-edge order, so a
//     seeded randomness source replays the identical walk.
//
// Errors:
//
//   - ErrNoCutEdges  : single district or missing CutEdges updater; the
//     chain cannot move from such a state.
//   - ErrNoValidFlip : cut edges exist but every flip would empty its
//     donor district; the walk is frozen.
//
// Complexity: O(cut edges) per proposal.
package flip
