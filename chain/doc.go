// Package chain implements the Markov chain driver: it repeatedly runs a
// proposal against the current Partition, gates the candidate through
// constraints and an acceptance rule, and emits the resulting sequence
// of states.
//
// What
//
//   - New validates the seed state and configuration; a seed that fails
//     the constraints is refused with ErrInvalidSeed (a wrong district
//     count is a caller precondition, not something a proposal repairs).
//   - The driver follows the scanner idiom:
//
//     ch, err := chain.New(proposal, isValid, chain.AlwaysAccept, seed, 10000,
//     chain.WithSeed(2018))
//     for ch.Next() {
//     state := ch.State()
//     // consume; the sequence is lazy, finite, non-restartable
//     }
//     if err := ch.Err(); err != nil { ... }
//
//   - Step 0 emits the seed. Each later step proposes, merges, checks
//     constraints, draws acceptance, and either advances to the candidate
//     or self-loops, re-emitting the current state. Self-loops are
//     diagnostics, never errors.
//   - Recoverable conditions (tree.ErrNoValidCut, constraint failures,
//     acceptance rejections) become self-loops and never escape the
//     driver. Fatal conditions (invalid flows, disconnected merges) abort
//     the run: Next returns false and Err carries the step index.
//
// Concurrency
//
//	A chain is strictly sequential — each step depends on the previous
//	accepted state — and a Chain value must not be shared across
//	goroutines. Run replicas as fully independent Chains with distinct
//	seeds; they may share the immutable Graph, never a Partition cache
//	mid-construction, an Assignment, or a rand source. Cancellation via
//	WithContext is honored once per step boundary, so an emitted
//	Partition is never half-constructed.
//
// Diagnostics
//
//	Stats() exposes step, accepted, self-loop and proposal-failure
//	counts; WithLogger adds periodic structured logging of the self-loop
//	rate, and package-level Prometheus counters aggregate across chains.
package chain
