// Package recom implements the ReCom (recombination) proposal: the move
// kernel of the districting Markov chain.
//
// What
//
//	One proposal, given the current Partition:
//	  1. Chooses a pair of adjacent districts — districts sharing at
//	     least one cut edge — either uniformly over adjacent pairs or
//	     weighted by shared boundary length (cut-edge count), per
//	     configuration.
//	  2. Extracts the induced subgraph over the two districts' nodes.
//	  3. Draws a uniformly random spanning tree of the merged subgraph
//	     (Wilson's algorithm; see package tree).
//	  4. Searches the tree for an edge whose removal splits it into two
//	     pieces, each within the configured tolerance of half the merged
//	     population, in a single O(|H|) subtree-sum traversal.
//	  5. Relabels the two pieces with the original district labels and
//	     returns the Flow of nodes whose label changed.
//
// Why
//
//	ReCom moves redraw a whole shared boundary at once, mixing orders of
//	magnitude faster than single-node flips, while tree splits guarantee
//	both new districts are contiguous by construction.
//
// Variants
//
//	NewSpectral replaces steps 3-4 with a spectral cut: the merged
//	region splits along the sign pattern of its Laplacian's Fiedler
//	vector. Spectral cuts follow the region's structural bottleneck and
//	enforce no population balance of their own; the driver's constraints
//	gate acceptance.
//
// Errors
//
//   - tree.ErrNoValidCut       recoverable — no drawn tree admitted a
//     balanced cut; the chain driver self-loops.
//   - ErrDisconnectedMerge     fatal invariant violation — an adjacent
//     district pair whose union is disconnected.
//   - ErrNoCutEdges            fatal — the partition has no district
//     boundary at all (single district, or cut edges not registered).
//   - ErrBadConfig             fatal — invalid construction parameters.
//
// Requirements
//
//	The Partition must register the updaters.CutEdges updater (adjacent
//	pairs come from its cached value), and the graph must declare the
//	configured population attribute.
package recom
