// Package chain declares the driver's function types, options, sentinel
// errors, and run statistics.
package chain

import (
	"context"
	"errors"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/redistrict/partition"
)

// Sentinel errors for chain construction.
var (
	// ErrNilProposal indicates a nil proposal kernel.
	ErrNilProposal = errors.New("chain: proposal is nil")

	// ErrNilPartition indicates a nil seed Partition.
	ErrNilPartition = errors.New("chain: initial partition is nil")

	// ErrBadSteps indicates a non-positive step budget.
	ErrBadSteps = errors.New("chain: total steps must be positive")

	// ErrInvalidSeed indicates the seed Partition fails the configured
	// constraints. The chain refuses to start: a violated precondition
	// (wrong district count, unbalanced plan) is a caller bug the walk
	// cannot repair.
	ErrInvalidSeed = errors.New("chain: initial partition fails constraints")
)

// Proposal inspects the current Partition and returns the Flow of a
// candidate move, drawing all randomness from the supplied per-chain
// source. recom.New produces values of this shape.
type Proposal func(p *partition.Partition, rng *rand.Rand) (partition.Flow, error)

// IsValid gates candidate Partitions; constraints.Validator.Valid is the
// canonical implementation. A nil IsValid accepts everything.
type IsValid func(p *partition.Partition) bool

// AcceptFunc returns the probability of accepting candidate given the
// current state. The driver draws a uniform variate and accepts iff it
// is <= the returned probability; probabilities >= 1 skip the draw so
// pure rejection-sampling configurations consume no extra randomness.
type AcceptFunc func(current, candidate *partition.Partition) float64

// Stats are the run counters of a Chain, updated once per emitted step.
type Stats struct {
	// Steps is the number of states emitted so far (seed included).
	Steps int

	// Accepted counts steps that advanced to a new state.
	Accepted int

	// SelfLoops counts steps that re-emitted the prior state, for any
	// recoverable reason.
	SelfLoops int

	// ProposalFailures counts the subset of self-loops caused by the
	// proposal finding no valid move (e.g. no balanced cut).
	ProposalFailures int
}

// SelfLoopRate returns the fraction of post-seed steps that self-looped.
// A rate stuck near 1 means the chain is effectively frozen; not an
// error, but worth surfacing.
func (s Stats) SelfLoopRate() float64 {
	moves := s.Accepted + s.SelfLoops
	if moves == 0 {
		return 0
	}

	return float64(s.SelfLoops) / float64(moves)
}

// Option configures New.
type Option func(*options)

type options struct {
	ctx      context.Context
	rng      *rand.Rand
	logger   *logrus.Entry
	logEvery int
}

// WithContext installs a cancellation context, checked once per step
// boundary (never mid-proposal).
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithSeed gives the chain its own deterministic randomness source.
// Replica chains must use distinct seeds and never share a source.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand installs a caller-owned randomness source (e.g. to interleave
// with seed generation). The source must not be shared across chains.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger enables periodic diagnostics on the given logrus entry.
func WithLogger(logger *logrus.Entry) Option {
	return func(o *options) { o.logger = logger }
}

// WithLogEvery sets the logging period in steps (default 1000).
func WithLogEvery(steps int) Option {
	return func(o *options) { o.logEvery = steps }
}
