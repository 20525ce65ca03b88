// Package trace implements the Manhattan router, the final stage of the
// interconnect pipeline.
//
// Per group it emits two kinds of geometry on the routing metal layer:
//
//   - Fan-in: one two-waypoint trace from every member contact to the
//     group centroid. A single-member group produces a degenerate
//     zero-length trace, which is valid output, not an error.
//   - Long-haul: one five-waypoint orthogonal path from the centroid
//     through the group's corridor lane to its bond pad port, ending at
//     the port center exactly.
//
// The long-haul shape is the same for both edges with the axis roles
// transposed. Every long-haul leg is strictly horizontal or vertical;
// fan-in segments run straight and may be diagonal.
package trace

import (
	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/route/group"
	"github.com/lightfab/picroute/pkg/route/pads"
)

// Trace is a fixed-width polyline on a metal layer, owned by one group.
type Trace struct {
	Group  string       `json:"group"`
	Points []geom.Point `json:"points"`
	Width  float64      `json:"width"`
	Layer  geom.Layer   `json:"layer"`
}

// Config holds the router parameters.
type Config struct {
	Width              float64    // trace width
	Layer              geom.Layer // routing metal layer
	IntermediateOffset float64    // corridor distance from the pad row toward the layout
}

// Route generates all traces for one placed pad row. offsets must be the
// channel assignment for the same row, index-aligned with row.Order.
//
// Traces are emitted group by group in sorted row order, fan-in first,
// then the long-haul path, so output order is deterministic.
func Route(row pads.Row, offsets []float64, cfg Config) ([]Trace, error) {
	if len(offsets) != len(row.Order) {
		return nil, errors.New(errors.ErrCodeInternal,
			"%s row: %d channel offsets for %d groups", row.Edge, len(offsets), len(row.Order))
	}

	var out []Trace
	for i, g := range row.Order {
		for _, m := range g.Members {
			out = append(out, Trace{
				Group:  g.Name,
				Points: []geom.Point{m.Center, g.Centroid},
				Width:  cfg.Width,
				Layer:  cfg.Layer,
			})
		}
		out = append(out, Trace{
			Group:  g.Name,
			Points: longHaul(row.Edge, g.Centroid, offsets[i], row.EdgeCoord, row.Pads[i].Port.Center, cfg),
			Width:  cfg.Width,
			Layer:  cfg.Layer,
		})
	}
	return out, nil
}

// longHaul builds the five-waypoint orthogonal path from a group
// centroid to its pad port.
//
// Left edge: move vertically onto the channel lane, horizontally to the
// intermediate corridor, vertically to the pad's row position, then
// horizontally into the pad. Bottom edge: the same with x and y roles
// swapped.
func longHaul(edge group.Edge, centroid geom.Point, offset, edgeCoord float64, padPort geom.Point, cfg Config) []geom.Point {
	corridor := edgeCoord + cfg.IntermediateOffset

	if edge == group.EdgeLeft {
		return []geom.Point{
			centroid,
			{X: centroid.X, Y: offset},
			{X: corridor, Y: offset},
			{X: corridor, Y: padPort.Y},
			{X: padPort.X, Y: padPort.Y},
		}
	}
	return []geom.Point{
		centroid,
		{X: offset, Y: centroid.Y},
		{X: offset, Y: corridor},
		{X: padPort.X, Y: corridor},
		{X: padPort.X, Y: padPort.Y},
	}
}

// IsManhattan reports whether every leg of a polyline is strictly
// horizontal or vertical. Zero-length legs count as both.
func IsManhattan(points []geom.Point) bool {
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		if dx != 0 && dy != 0 {
			return false
		}
	}
	return true
}
