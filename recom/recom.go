// Package recom: the recombination proposal implementation.
package recom

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/tree"
	"github.com/katalvlaran/redistrict/updaters"
)

// Sentinel errors for proposal construction and execution.
var (
	// ErrBadConfig indicates invalid construction parameters: an empty
	// population attribute, a negative tolerance, a non-positive retry
	// budget, or an unknown pair-selection mode.
	ErrBadConfig = errors.New("recom: invalid configuration")

	// ErrNoCutEdges indicates a partition with no cut edges: either a
	// single district (nothing to recombine) or a missing CutEdges
	// updater. Fatal: the chain cannot move from such a state.
	ErrNoCutEdges = errors.New("recom: partition has no cut edges")

	// ErrDisconnectedMerge indicates that the union of a chosen adjacent
	// district pair is disconnected. Adjacent districts always share an
	// edge, so this is an invariant violation, checked defensively.
	ErrDisconnectedMerge = errors.New("recom: merged district pair is disconnected")
)

// Pair-selection modes for step 1 of the proposal.
const (
	// PairByCutEdges picks a cut edge uniformly and takes its two
	// districts: pairs are weighted by shared boundary length. This is
	// the classic ReCom weighting.
	PairByCutEdges = "cut-edges"

	// PairUniform picks uniformly among the distinct adjacent district
	// pairs, ignoring boundary length.
	PairUniform = "uniform"
)

// Proposal is the chain-facing shape of a proposal kernel: it inspects a
// Partition and returns the Flow of a candidate move, drawing all
// randomness from the supplied per-chain source.
type Proposal func(p *partition.Partition, rng *rand.Rand) (partition.Flow, error)

// Options configures New. Use DefaultOptions and the With* helpers.
type Options struct {
	// Epsilon is the population tolerance: each post-split district must
	// sit within Epsilon of half the merged population.
	Epsilon float64

	// MaxRetries bounds how many spanning trees are drawn per proposal
	// before it gives up with tree.ErrNoValidCut.
	MaxRetries int

	// PairSelection is PairByCutEdges (default) or PairUniform.
	PairSelection string
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the standard configuration: epsilon 0.05,
// boundary-weighted pair selection, and the tree package's default retry
// budget.
func DefaultOptions() Options {
	return Options{
		Epsilon:       0.05,
		MaxRetries:    tree.DefaultMaxAttempts,
		PairSelection: PairByCutEdges,
	}
}

// WithEpsilon sets the population tolerance (must be >= 0).
func WithEpsilon(epsilon float64) Option {
	return func(o *Options) { o.Epsilon = epsilon }
}

// WithMaxRetries sets the spanning-tree retry budget (must be positive).
func WithMaxRetries(n int) Option {
	return func(o *Options) { o.MaxRetries = n }
}

// WithPairSelection sets the adjacent-pair selection mode.
func WithPairSelection(mode string) Option {
	return func(o *Options) { o.PairSelection = mode }
}

// New builds a ReCom Proposal reading node populations from the popAttr
// node attribute.
//
// Error Conditions:
//   - ErrBadConfig : popAttr empty, Epsilon < 0, MaxRetries < 1, or an
//     unknown PairSelection mode.
//
// The returned Proposal reports tree.ErrNoValidCut when a step finds no
// balanced split (recoverable; the driver self-loops) and
// ErrDisconnectedMerge / ErrNoCutEdges / attribute lookup failures as
// fatal conditions.
func New(popAttr string, opts ...Option) (Proposal, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if popAttr == "" {
		return nil, fmt.Errorf("%w: empty population attribute", ErrBadConfig)
	}
	if o.Epsilon < 0 {
		return nil, fmt.Errorf("%w: epsilon=%v", ErrBadConfig, o.Epsilon)
	}
	if o.MaxRetries < 1 {
		return nil, fmt.Errorf("%w: max retries=%d", ErrBadConfig, o.MaxRetries)
	}
	if o.PairSelection != PairByCutEdges && o.PairSelection != PairUniform {
		return nil, fmt.Errorf("%w: pair selection %q", ErrBadConfig, o.PairSelection)
	}

	return func(p *partition.Partition, rng *rand.Rand) (partition.Flow, error) {
		// 1. Adjacent district pair.
		d1, d2, err := choosePair(p, o.PairSelection, rng)
		if err != nil {
			return nil, err
		}

		// 2. Merged subgraph over both districts' nodes.
		merged := make([]int, 0, len(p.Part(d1))+len(p.Part(d2)))
		merged = append(merged, p.Part(d1)...)
		merged = append(merged, p.Part(d2)...)
		sub, orig, err := p.Graph().InducedSubgraph(merged)
		if err != nil {
			return nil, fmt.Errorf("recom: extracting districts %d+%d: %w", d1, d2, err)
		}
		if !sub.Connected() {
			// Should be impossible for an adjacent pair.
			return nil, fmt.Errorf("%w: districts %d and %d", ErrDisconnectedMerge, d1, d2)
		}

		pops, err := sub.NodeAttr(popAttr)
		if err != nil {
			return nil, fmt.Errorf("recom: %w", err)
		}
		var total int64
		for _, pop := range pops {
			total += pop
		}

		// 3.-4. Uniform spanning tree + balanced cut, inside the retry loop.
		side, err := tree.Bipartition(sub, pops, float64(total)/2, o.Epsilon, rng,
			tree.WithMaxAttempts(o.MaxRetries))
		if err != nil {
			// tree.ErrNoValidCut passes through untouched: the driver
			// recognizes it as a rejected step.
			return nil, err
		}

		// 5. Relabel: the detached side takes d1, the remainder d2, and
		// the flow is exactly the nodes whose label changed.
		return sideFlow(p, orig, side, d1, d2), nil
	}, nil
}

// sideFlow relabels the merged region: subgraph-local nodes in side take
// d1, the remainder d2. The flow holds only the nodes whose label
// actually changed.
func sideFlow(p *partition.Partition, orig, side []int, d1, d2 partition.District) partition.Flow {
	inSide := make(map[int]bool, len(side))
	for _, local := range side {
		inSide[orig[local]] = true
	}
	flow := make(partition.Flow)
	labels := p.Assignment().Labels()
	for _, global := range orig {
		next := d2
		if inSide[global] {
			next = d1
		}
		if labels[global] != next {
			flow[global] = partition.Move{From: labels[global], To: next}
		}
	}

	return flow
}

// choosePair selects an unordered pair of adjacent districts.
func choosePair(p *partition.Partition, mode string, rng *rand.Rand) (partition.District, partition.District, error) {
	cut, err := updaters.CutEdgeSet(p)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNoCutEdges, err)
	}
	if len(cut) == 0 {
		return 0, 0, ErrNoCutEdges
	}

	labels := p.Assignment().Labels()
	indices := cut.Sorted()

	if mode == PairByCutEdges {
		e := p.Graph().Edge(indices[rng.Intn(len(indices))])
		d1, d2 := labels[e.U], labels[e.V]
		if d2 < d1 {
			d1, d2 = d2, d1
		}

		return d1, d2, nil
	}

	// PairUniform: deduplicate the adjacent pairs, then pick uniformly.
	seen := make(map[[2]partition.District]bool)
	var pairs [][2]partition.District
	for _, ei := range indices {
		e := p.Graph().Edge(ei)
		d1, d2 := labels[e.U], labels[e.V]
		if d2 < d1 {
			d1, d2 = d2, d1
		}
		key := [2]partition.District{d1, d2}
		if !seen[key] {
			seen[key] = true
			pairs = append(pairs, key)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}

		return pairs[i][1] < pairs[j][1]
	})
	pair := pairs[rng.Intn(len(pairs))]

	return pair[0], pair[1], nil
}
