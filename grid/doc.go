// Package grid generates rectangular grid dual-graphs, the standard
// synthetic fixtures for exercising recombination chains without real
// shapefile data.
//
// What:
//
//   - New builds a W×H grid as a *graph.Graph: one node per cell in
//     row-major order, edges between orthogonal (and optionally
//     diagonal) neighbors, and a population attribute on every node.
//   - StripeLabels and BandLabels produce seed assignments that split
//     the grid into contiguous vertical or horizontal districts.
//   - Index and Coordinate convert between (x, y) cells and node IDs.
//
// Why:
//
//   - Chain behavior (mixing, balance, contiguity) is easiest to judge
//     on grids, where every property can be checked by eye.
//   - Tests and benchmarks need graphs of arbitrary size with known
//     structure and exactly reproducible populations.
//
// Complexity:
//
//   - New: O(W×H) nodes and edges.
//   - StripeLabels / BandLabels: O(W×H).
//
// Errors:
//
//   - ErrBadDimensions: width or height below 1.
//   - ErrBadParts: a label helper asked for fewer than one district or
//     more districts than the axis has cells.
//   - ErrBadPopulations: an explicit population slice of the wrong length.
package grid
