// Package constraints: contiguity checks.
package constraints

import "github.com/katalvlaran/redistrict/partition"

// Contiguous reports whether every district's induced subgraph is
// connected. ReCom cannot produce a discontiguous district (both halves
// of a tree cut are connected), so under ReCom this is a safety net; for
// single-node flip proposals it is load-bearing.
// Complexity: O(V + E) over all districts.
func Contiguous(p *partition.Partition) bool {
	g := p.Graph()
	for _, d := range p.Districts() {
		ok, err := g.ConnectedSubset(p.Part(d))
		if err != nil || !ok {
			return false
		}
	}

	return true
}

// DiscontiguousDistricts returns the labels of districts that are not
// internally connected, in ascending order. Diagnostic detail for a
// failed Contiguous check.
func DiscontiguousDistricts(p *partition.Partition) []partition.District {
	g := p.Graph()
	var broken []partition.District
	for _, d := range p.Districts() {
		if ok, err := g.ConnectedSubset(p.Part(d)); err != nil || !ok {
			broken = append(broken, d)
		}
	}

	return broken
}
