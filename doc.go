// Package redistrict is an ensemble-sampling engine for political
// districting plans: it runs a Markov chain over graph partitions to
// generate statistically valid ensembles against which an observed plan
// can be compared.
//
// 🚀 What is redistrict?
//
//	A deterministic, seed-reproducible library that brings together:
//		• graph/       — immutable dual graphs with node attributes & edge weights
//		• partition/   — copy-on-merge Partition snapshots with cached statistics
//		• updaters/    — incremental per-district statistics (tallies, cut edges, …)
//		• tree/        — uniform spanning trees (Wilson) & balanced edge-cut search
//		• recom/       — the ReCom recombination proposal
//		• constraints/ — population balance, contiguity, bounds predicates
//		• chain/       — the Markov chain driver with pluggable acceptance rules
//		• grid/        — grid dual-graph fixtures for tests and demos
//
// ✨ Why choose redistrict?
//
//   - Reproducible – a fixed seed yields a bit-identical ensemble, run after run
//   - Incremental – statistics update in time proportional to the change, not |V|
//   - Immutable – parent partitions stay valid; replicas share only the Graph
//   - Honest sampling – spanning trees are drawn provably uniformly (Wilson)
//
// Quick ASCII example:
//
//	    1───2          district A: {1,2}
//	    │   │          district B: {3,4}
//	    4───3
//
//	one ReCom step merges A∪B, draws a random spanning tree of the square,
//	and cuts it into two new contiguous, population-balanced districts.
//
// Dive into cmd/recom-run for an end-to-end ensemble runner.
package redistrict
