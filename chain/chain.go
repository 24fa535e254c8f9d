// Package chain: the Markov chain driver loop.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/tree"
)

// defaultLogEvery is the diagnostics period when WithLogger is set but
// WithLogEvery is not.
const defaultLogEvery = 1000

// Chain drives the Markov chain. Obtain one from New, then advance it
// with Next / State / Err (scanner idiom). A Chain is single-use and
// must not be shared across goroutines.
type Chain struct {
	proposal Proposal
	isValid  IsValid
	accept   AcceptFunc

	current    *partition.Partition
	totalSteps int
	stats      Stats
	err        error

	ctx      context.Context
	rng      *rand.Rand
	logger   *logrus.Entry
	logEvery int
}

// New constructs a chain from a proposal kernel, a validity predicate
// (nil accepts everything), an acceptance rule (nil means AlwaysAccept),
// a seed Partition, and a total step budget (states to emit, seed
// included).
//
// Error Conditions:
//   - ErrNilProposal / ErrNilPartition / ErrBadSteps : bad arguments.
//   - ErrInvalidSeed : the seed Partition fails isValid; starting from a
//     violated precondition (e.g. the wrong number of districts) is a
//     caller bug the proposal cannot repair.
//
// Complexity: O(isValid(seed)); the walk itself happens in Next.
func New(proposal Proposal, isValid IsValid, accept AcceptFunc, initial *partition.Partition, totalSteps int, opts ...Option) (*Chain, error) {
	if proposal == nil {
		return nil, ErrNilProposal
	}
	if initial == nil {
		return nil, ErrNilPartition
	}
	if totalSteps < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadSteps, totalSteps)
	}
	if isValid != nil && !isValid(initial) {
		return nil, ErrInvalidSeed
	}
	if accept == nil {
		accept = AlwaysAccept
	}

	o := options{
		ctx:      context.Background(),
		rng:      rand.New(rand.NewSource(1)),
		logEvery: defaultLogEvery,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logEvery < 1 {
		o.logEvery = defaultLogEvery
	}

	return &Chain{
		proposal:   proposal,
		isValid:    isValid,
		accept:     accept,
		current:    initial,
		totalSteps: totalSteps,
		ctx:        o.ctx,
		rng:        o.rng,
		logger:     o.logger,
		logEvery:   o.logEvery,
	}, nil
}

// Next advances the chain by one step. It returns true when a state is
// available via State, false when the budget is exhausted, the context
// is canceled, or a fatal error occurred (see Err).
//
// The first call emits the seed; each later call emits either an
// accepted candidate or, on any recoverable rejection, the prior state
// again (a self-loop).
func (c *Chain) Next() bool {
	if c.err != nil || c.stats.Steps >= c.totalSteps {
		return false
	}
	// Cancellation is honored only at step boundaries so that a state is
	// never emitted half-constructed.
	select {
	case <-c.ctx.Done():
		c.err = c.ctx.Err()

		return false
	default:
	}

	// Step 0: the seed itself.
	if c.stats.Steps == 0 {
		c.emit()

		return true
	}

	flow, err := c.proposal(c.current, c.rng)
	switch {
	case errors.Is(err, tree.ErrNoValidCut):
		// No valid move this step: a rejected proposal, not an error.
		c.stats.SelfLoops++
		c.stats.ProposalFailures++
		chainSelfLoopsTotal.Inc()
		chainProposalFailuresTotal.Inc()
		c.emit()

		return true
	case err != nil:
		c.err = fmt.Errorf("chain: step %d: proposal: %w", c.stats.Steps, err)

		return false
	}

	candidate, err := c.current.Merge(flow)
	if err != nil {
		// Merge failures (stale flows, vanished districts) are invariant
		// violations: abort with context rather than walk on.
		c.err = fmt.Errorf("chain: step %d: merge: %w", c.stats.Steps, err)

		return false
	}

	if c.isValid != nil && !c.isValid(candidate) {
		c.selfLoop()

		return true
	}

	probability := c.accept(c.current, candidate)
	if probability < 1 && c.rng.Float64() > probability {
		c.selfLoop()

		return true
	}

	c.current = candidate
	c.stats.Accepted++
	chainAcceptedTotal.Inc()
	c.emit()

	return true
}

// selfLoop counts a rejected step; the prior state is re-emitted.
func (c *Chain) selfLoop() {
	c.stats.SelfLoops++
	chainSelfLoopsTotal.Inc()
	c.emit()
}

// emit finalizes the step counters and periodic diagnostics.
func (c *Chain) emit() {
	c.stats.Steps++
	chainStepsTotal.Inc()
	if c.logger != nil && c.stats.Steps%c.logEvery == 0 {
		c.logger.WithFields(logrus.Fields{
			"step":         c.stats.Steps,
			"accepted":     c.stats.Accepted,
			"selfLoops":    c.stats.SelfLoops,
			"selfLoopRate": c.stats.SelfLoopRate(),
		}).Info("chain progress")
	}
}

// State returns the Partition emitted by the last successful Next.
func (c *Chain) State() *partition.Partition { return c.current }

// Err returns the fatal error that stopped the chain, or nil after a
// clean run. Self-loops never produce an error.
func (c *Chain) Err() error { return c.err }

// Stats returns a copy of the run counters.
func (c *Chain) Stats() Stats { return c.stats }
