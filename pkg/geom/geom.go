// Package geom provides the shared planar geometry types for the
// interconnect pipeline.
//
// All coordinates are in layout user units (micrometers in the reference
// process) on a single shared plane with an arbitrary but consistent
// origin. The types here are plain immutable values; pipeline stages
// derive new geometry rather than mutating existing geometry.
package geom

import "fmt"

// Point is a position on the layout plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the point translated by dx and dy.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// String formats the point as "(x, y)" with fixed precision.
func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether the box has non-negative extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX >= b.MinX && b.MaxY >= b.MinY
}

// Extend returns the smallest box containing both b and p.
func (b BBox) Extend(p Point) BBox {
	out := b
	if p.X < out.MinX {
		out.MinX = p.X
	}
	if p.X > out.MaxX {
		out.MaxX = p.X
	}
	if p.Y < out.MinY {
		out.MinY = p.Y
	}
	if p.Y > out.MaxY {
		out.MaxY = p.Y
	}
	return out
}

// BBoxOf returns the bounding box of a set of points.
// The zero BBox is returned for an empty set.
func BBoxOf(points []Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	b := BBox{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b
}

// Layer identifies a process layer as a layer number and datatype pair,
// e.g. 49/0 for the M3 routing metal in the reference process.
type Layer struct {
	Number   int `json:"number"`
	Datatype int `json:"datatype"`
}

// String formats the layer as "number/datatype".
func (l Layer) String() string {
	return fmt.Sprintf("%d/%d", l.Number, l.Datatype)
}
