package sink

import (
	"bytes"
	"fmt"

	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/route"
	"github.com/lightfab/picroute/pkg/route/pads"
)

// Preview palette. Copper for metal, gold for pads, grey for the
// existing-layout outline.
const (
	colorTrace   = "#b87333"
	colorPad     = "#d4a017"
	colorPadEdge = "#8a6a0f"
	colorBBox    = "#888888"
	colorText    = "#333333"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	margin float64
	labels bool
}

// WithScale sets the pixels-per-micrometer factor (default 0.25).
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithMargin sets the whitespace around the drawing extent, in
// micrometers (default 100).
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithLabels draws each pad's group name next to the pad.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// RenderSVG draws a routing result as a 2D preview: the bounding box of
// the existing layout, both bond pad rows, and all wire traces. Layout
// coordinates are micrometers with the y-axis pointing up; the renderer
// flips to SVG screen coordinates.
func RenderSVG(res *route.Result, bbox geom.BBox, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 0.25, margin: 100}
	for _, opt := range opts {
		opt(&r)
	}

	ext := drawingExtent(res, bbox)
	ext.MinX -= r.margin
	ext.MinY -= r.margin
	ext.MaxX += r.margin
	ext.MaxY += r.margin

	w := ext.Width() * r.scale
	h := ext.Height() * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	r.renderBBox(&buf, ext, bbox)
	for _, t := range res.Traces {
		r.renderTrace(&buf, ext, t.Points, t.Width)
	}
	r.renderRow(&buf, ext, res.Placement.Left)
	r.renderRow(&buf, ext, res.Placement.Bottom)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// drawingExtent grows the layout bounding box to cover every pad corner
// and trace waypoint.
func drawingExtent(res *route.Result, bbox geom.BBox) geom.BBox {
	ext := bbox
	for _, row := range []pads.Row{res.Placement.Left, res.Placement.Bottom} {
		for _, p := range row.Pads {
			ext = ext.Extend(p.Origin)
			ext = ext.Extend(p.Origin.Add(p.Size, p.Size))
		}
	}
	for _, t := range res.Traces {
		for _, pt := range t.Points {
			ext = ext.Extend(pt)
		}
	}
	return ext
}

// toScreen maps a layout point into SVG coordinates, flipping y.
func (r *svgRenderer) toScreen(ext geom.BBox, p geom.Point) (float64, float64) {
	return (p.X - ext.MinX) * r.scale, (ext.MaxY - p.Y) * r.scale
}

func (r *svgRenderer) renderBBox(buf *bytes.Buffer, ext, bbox geom.BBox) {
	x, y := r.toScreen(ext, geom.Point{X: bbox.MinX, Y: bbox.MaxY})
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1" stroke-dasharray="6,4"/>`+"\n",
		x, y, bbox.Width()*r.scale, bbox.Height()*r.scale, colorBBox)
}

func (r *svgRenderer) renderTrace(buf *bytes.Buffer, ext geom.BBox, points []geom.Point, width float64) {
	if len(points) < 2 {
		return
	}
	var pts bytes.Buffer
	for i, p := range points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		x, y := r.toScreen(ext, p)
		fmt.Fprintf(&pts, "%.1f,%.1f", x, y)
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-opacity="0.8" stroke-linejoin="round" stroke-linecap="round"/>`+"\n",
		pts.String(), colorTrace, width*r.scale)
}

func (r *svgRenderer) renderRow(buf *bytes.Buffer, ext geom.BBox, row pads.Row) {
	for _, p := range row.Pads {
		x, y := r.toScreen(ext, geom.Point{X: p.Origin.X, Y: p.Origin.Y + p.Size})
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			x, y, p.Size*r.scale, p.Size*r.scale, colorPad, colorPadEdge)

		if r.labels {
			lx, ly := r.toScreen(ext, p.Port.Center)
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
				lx, ly, 10*r.scale/0.25, colorText, p.Group)
		}
	}
}
