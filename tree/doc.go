// Package tree implements the spanning-tree machinery behind the ReCom
// proposal: provably uniform random spanning trees, balanced edge-cut
// search, tree bipartitioning with a retry budget, and recursive tree
// partitioning for seed plans.
//
// What
//
//   - Uniform draws a spanning tree uniformly at random over all spanning
//     trees of a connected graph, via Wilson's cycle-popping, loop-erased
//     random walk. Uniformity is load-bearing: a biased sampler silently
//     breaks the Markov chain's stationary distribution, so this is not a
//     random DFS/BFS tree.
//   - BalancedCuts finds every tree edge whose removal splits the tree
//     into pieces within a tolerance of a population target, by a single
//     subtree-sum traversal — O(|V|) over all candidate edges, not O(|V|²).
//   - Bipartition resamples trees up to a retry budget until a balanced
//     cut exists, then returns one side of a uniformly chosen cut.
//   - RecursivePartition peels districts off a graph one tree cut at a
//     time to generate a balanced seed assignment.
//   - Count evaluates Kirchhoff's matrix-tree theorem, giving the exact
//     number of spanning trees of a small graph (used to verify sampler
//     uniformity and as a compactness score).
//
// Determinism
//
//	Every random choice is drawn from the caller-supplied *rand.Rand, and
//	all other iteration follows the graph's canonical node/edge order, so
//	a fixed seed reproduces the identical sequence of trees and cuts.
//
// Errors
//
//   - ErrGraphNil      nil graph.
//   - ErrDisconnected  the graph has no spanning tree.
//   - ErrBadPopulation population slice does not cover the nodes.
//   - ErrBadTarget     non-positive target or negative tolerance.
//   - ErrNoValidCut    no balanced cut found within the retry budget;
//     recoverable — the chain driver treats it as a rejected proposal.
//
// Complexity (V = |vertices|, E = |edges|)
//
//   - Uniform:        O(mean commute time), ≈ O(V·E) worst case, far less
//     on the shallow planar graphs districting uses
//   - BalancedCuts:   O(V)
//   - Count:          O(V³)
package tree
