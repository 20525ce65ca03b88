// Package pads implements bond pad placement, the third stage of the
// interconnect pipeline.
//
// Each surviving contact group receives one fixed-size square pad on its
// assigned chip edge. Pads sit outside the global bounding box of the
// existing layout, separated from it by the configured edge buffer, and
// are spaced at a uniform pitch along the edge. Groups are ordered along
// the edge by their centroid coordinate, so pad order mirrors spatial
// order — the first half of the monotonicity invariant that keeps traces
// from crossing (the channel assigner supplies the second half).
//
// Placement is a pure computation: it returns pads and their connection
// ports without touching the shared registry. The caller decides when to
// insert the "bondpad_<group>" ports.
package pads

import (
	"slices"

	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/port"
	"github.com/lightfab/picroute/pkg/route/group"
)

// PortPrefix is prepended to the owning group name to form the pad's
// registry port name.
const PortPrefix = "bondpad_"

// Outward-facing port orientations, normal to the chip boundary.
const (
	orientLeft   = 0.0
	orientBottom = 90.0
)

// Config holds the pad placement parameters.
type Config struct {
	EdgeBuffer   float64    // clearance between bbox and pad edge
	Size         float64    // square pad footprint, Size × Size
	Pitch        float64    // center-to-center spacing along the edge
	PortWidth    float64    // electrical width of the pad port
	LeftStartY   float64    // y of the first left-edge pad origin
	BottomStartX float64    // x of the first bottom-edge pad origin
	Layer        geom.Layer // metal layer carried by the pad port
}

// Validate checks the geometric preconditions. Pitch must strictly
// exceed pad size; equal or smaller pitch would overlap or abut pads and
// is a configuration error, not something to tolerate silently.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pad size %.3f must be positive", c.Size)
	}
	if c.Pitch <= c.Size {
		return errors.New(errors.ErrCodeInvalidPitch,
			"pad pitch %.3f must exceed pad size %.3f", c.Pitch, c.Size)
	}
	return nil
}

// Pad is one placed bond pad. Origin is the lower-left corner of the
// square footprint; Port sits at the geometric center.
type Pad struct {
	Group  string     `json:"group"`
	Origin geom.Point `json:"origin"`
	Size   float64    `json:"size"`
	Port   port.Port  `json:"port"`
}

// Row is the complete placement for one chip edge: the groups in sorted
// order and their pads, index-aligned. EdgeCoord is the pad-row
// coordinate (x of the left row, y of the bottom row).
type Row struct {
	Edge      group.Edge    `json:"edge"`
	EdgeCoord float64       `json:"edge_coord"`
	Order     []group.Group `json:"order"`
	Pads      []Pad         `json:"pads"`
}

// Placement holds both pad rows.
type Placement struct {
	Left   Row `json:"left"`
	Bottom Row `json:"bottom"`
}

// Ports returns the bond pad connection ports of both rows, left row
// first, for insertion into the shared registry.
func (p Placement) Ports() []port.Port {
	out := make([]port.Port, 0, len(p.Left.Pads)+len(p.Bottom.Pads))
	for _, pad := range p.Left.Pads {
		out = append(out, pad.Port)
	}
	for _, pad := range p.Bottom.Pads {
		out = append(out, pad.Port)
	}
	return out
}

// Place computes pad geometry for a partitioned group set against the
// global bounding box of the existing layout.
//
// The bounding box is an explicit input: this stage never inspects
// shared layout state. Sorting is stable, so groups with identical
// centroid coordinates keep their configuration order.
func Place(part group.Partition, bbox geom.BBox, cfg Config) (Placement, error) {
	if err := cfg.Validate(); err != nil {
		return Placement{}, err
	}
	if !bbox.Valid() {
		return Placement{}, errors.New(errors.ErrCodeInvalidConfig,
			"bounding box has negative extent: %+v", bbox)
	}

	leftEdgeX := bbox.MinX - cfg.EdgeBuffer
	bottomEdgeY := bbox.MinY - cfg.EdgeBuffer

	return Placement{
		Left:   placeRow(group.EdgeLeft, part.Left, leftEdgeX, cfg),
		Bottom: placeRow(group.EdgeBottom, part.Bottom, bottomEdgeY, cfg),
	}, nil
}

// placeRow sorts one edge's groups and lays out its pads at uniform
// pitch starting from the configured edge start coordinate.
func placeRow(edge group.Edge, groups []group.Group, edgeCoord float64, cfg Config) Row {
	order := make([]group.Group, len(groups))
	copy(order, groups)
	slices.SortStableFunc(order, func(a, b group.Group) int {
		ka, kb := edge.OrderAxis(a), edge.OrderAxis(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})

	row := Row{Edge: edge, EdgeCoord: edgeCoord, Order: order}
	for i, g := range order {
		row.Pads = append(row.Pads, makePad(edge, g.Name, edgeCoord, i, cfg))
	}
	return row
}

// makePad builds the i-th pad of a row. The connection port sits at the
// pad center, oriented outward, on the routing metal layer.
func makePad(edge group.Edge, groupName string, edgeCoord float64, i int, cfg Config) Pad {
	var origin geom.Point
	var orientation float64
	if edge == group.EdgeLeft {
		origin = geom.Point{X: edgeCoord, Y: cfg.LeftStartY + float64(i)*cfg.Pitch}
		orientation = orientLeft
	} else {
		origin = geom.Point{X: cfg.BottomStartX + float64(i)*cfg.Pitch, Y: edgeCoord}
		orientation = orientBottom
	}

	return Pad{
		Group:  groupName,
		Origin: origin,
		Size:   cfg.Size,
		Port: port.Port{
			Name:        PortPrefix + groupName,
			Center:      origin.Add(cfg.Size/2, cfg.Size/2),
			Orientation: orientation,
			Width:       cfg.PortWidth,
			Layer:       cfg.Layer,
			Kind:        port.KindElectrical,
		},
	}
}
