// Package channel implements routing-channel assignment, the fourth
// stage of the interconnect pipeline.
//
// Every group on an edge receives one scalar: the coordinate of its
// private corridor lane at the intermediate routing distance. Lanes are
// spaced by trace width plus a clearance gap, spread symmetrically
// around the member centroids, and strictly increasing in sorted group
// order. Because pad indices increase in the same order (the pad placer
// sorts by the same axis), two long-haul paths can never cross: this is
// classic 1-D channel assignment, simplified because ordering along one
// axis is the sole disambiguator and no conflict graph is needed.
package channel

import (
	"github.com/lightfab/picroute/pkg/route/pads"
)

// Spacing returns the center-to-center lane spacing for a given trace
// width and inter-channel clearance gap.
func Spacing(traceWidth, gap float64) float64 {
	return traceWidth + gap
}

// Assign computes one corridor lane coordinate per group of a placed pad
// row, index-aligned with row.Order.
//
// For the group at sorted index idx out of n:
//
//	offset = centroid.axis + idx·spacing − (n−1)·spacing/2
//
// where axis is the edge's ordering axis (y on the left edge, x on the
// bottom edge). The offsets spread evenly around the centroids and, for
// any positive spacing, are strictly increasing with idx even when two
// centroids coincide.
func Assign(row pads.Row, spacing float64) []float64 {
	n := len(row.Order)
	if n == 0 {
		return nil
	}

	half := float64(n-1) * spacing / 2
	offsets := make([]float64, n)
	for idx, g := range row.Order {
		offsets[idx] = row.Edge.OrderAxis(g) + float64(idx)*spacing - half
	}
	return offsets
}
