// Package updaters: election tallies with per-party shares.
package updaters

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/redistrict/partition"
)

// Election tracks one contest: per-party vote totals by district, read
// from one node attribute per party. Cached under the election's own
// name as an *ElectionResults.
//
// Incremental recomputation follows the same flow discipline as Tally,
// per party.
type Election struct {
	name    string
	parties []string
	attrs   map[string]string
}

// NewElection builds an election updater named name. parties maps each
// party name to the node attribute holding its vote counts; party order
// in results is alphabetical regardless of map order.
func NewElection(name string, parties map[string]string) *Election {
	names := make([]string, 0, len(parties))
	for party := range parties {
		names = append(names, party)
	}
	sort.Strings(names)

	attrs := make(map[string]string, len(parties))
	for party, attr := range parties {
		attrs[party] = attr
	}

	return &Election{name: name, parties: names, attrs: attrs}
}

// Name implements partition.Updater.
func (e *Election) Name() string { return e.name }

// Requires declares one node attribute per party.
func (e *Election) Requires() partition.Requirements {
	attrs := make([]string, 0, len(e.parties))
	for _, party := range e.parties {
		attrs = append(attrs, e.attrs[party])
	}

	return partition.Requirements{NodeAttrs: attrs}
}

// FromScratch sums every party's votes per district.
// Complexity: O(parties × V).
func (e *Election) FromScratch(p *partition.Partition) (any, error) {
	votes := make(map[string]map[partition.District]int64, len(e.parties))
	for _, party := range e.parties {
		column, err := p.Graph().NodeAttr(e.attrs[party])
		if err != nil {
			return nil, err
		}
		totals := make(map[partition.District]int64, p.NumDistricts())
		for _, d := range p.Districts() {
			totals[d] = 0
		}
		labels := p.Assignment().Labels()
		for v, label := range labels {
			totals[label] += column[v]
		}
		votes[party] = totals
	}

	return &ElectionResults{name: e.name, parties: e.parties, votes: votes}, nil
}

// FromFlow moves each flowed node's votes between districts, per party.
// Complexity: O(parties × |flow|).
func (e *Election) FromFlow(parent *partition.Partition, flow partition.Flow, old any, p *partition.Partition) (any, error) {
	prior, ok := old.(*ElectionResults)
	if !ok {
		return nil, fmt.Errorf("%w: election %q", ErrBadCache, e.name)
	}

	votes := make(map[string]map[partition.District]int64, len(e.parties))
	for _, party := range e.parties {
		column, err := p.Graph().NodeAttr(e.attrs[party])
		if err != nil {
			return nil, err
		}
		totals := make(map[partition.District]int64, len(prior.votes[party]))
		for d, t := range prior.votes[party] {
			totals[d] = t
		}
		for node, mv := range flow {
			totals[mv.From] -= column[node]
			totals[mv.To] += column[node]
		}
		votes[party] = totals
	}

	return &ElectionResults{name: e.name, parties: e.parties, votes: votes}, nil
}

// ElectionResults is an Election's cached value: per-party, per-district
// vote totals plus derived shares.
type ElectionResults struct {
	name    string
	parties []string
	votes   map[string]map[partition.District]int64
}

// Parties returns the party names in result order. Callers must not
// modify the returned slice.
func (r *ElectionResults) Parties() []string { return r.parties }

// Districts returns the district labels in ascending order.
func (r *ElectionResults) Districts() []partition.District {
	if len(r.parties) == 0 {
		return nil
	}
	first := r.votes[r.parties[0]]
	districts := make([]partition.District, 0, len(first))
	for d := range first {
		districts = append(districts, d)
	}
	sort.Slice(districts, func(i, j int) bool { return districts[i] < districts[j] })

	return districts
}

// TotalsForParty returns the party's votes per district. Callers must
// not modify the returned map.
func (r *ElectionResults) TotalsForParty(party string) map[partition.District]int64 {
	return r.votes[party]
}

// Totals returns each district's combined votes across all parties.
func (r *ElectionResults) Totals() map[partition.District]int64 {
	totals := make(map[partition.District]int64)
	for _, party := range r.parties {
		for d, t := range r.votes[party] {
			totals[d] += t
		}
	}

	return totals
}

// Percent returns the party's share of district d's votes, or NaN when
// the district cast no votes at all.
func (r *ElectionResults) Percent(party string, d partition.District) float64 {
	var total int64
	for _, q := range r.parties {
		total += r.votes[q][d]
	}
	if total == 0 {
		return math.NaN()
	}

	return float64(r.votes[party][d]) / float64(total)
}

// PercentsForParty returns the party's share per district.
func (r *ElectionResults) PercentsForParty(party string) map[partition.District]float64 {
	percents := make(map[partition.District]float64, len(r.votes[party]))
	for d := range r.votes[party] {
		percents[d] = r.Percent(party, d)
	}

	return percents
}

// Wins counts the districts where the party holds a strict plurality.
// Ties award no district.
func (r *ElectionResults) Wins(party string) int {
	var wins int
	for _, d := range r.Districts() {
		best := r.votes[party][d]
		strict := true
		for _, q := range r.parties {
			if q == party {
				continue
			}
			if r.votes[q][d] >= best {
				strict = false
				break
			}
		}
		if strict {
			wins++
		}
	}

	return wins
}

// String renders per-district shares, districts ascending, parties in
// result order.
func (r *ElectionResults) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Election Results for %s", r.name)
	for _, d := range r.Districts() {
		fmt.Fprintf(&b, "\n%d:", d)
		for _, party := range r.parties {
			fmt.Fprintf(&b, "\n  %s: %s", party,
				strconv.FormatFloat(r.Percent(party, d), 'g', 4, 64))
		}
	}

	return b.String()
}

// ElectionValue fetches a named election's cached results from p.
//
// Error Conditions:
//   - partition.ErrUnknownUpdater : no updater by that name.
//   - ErrBadCache                 : the cached value is not election results.
func ElectionValue(p *partition.Partition, name string) (*ElectionResults, error) {
	raw, err := p.Value(name)
	if err != nil {
		return nil, err
	}
	results, ok := raw.(*ElectionResults)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not election results", ErrBadCache, name)
	}

	return results, nil
}
