// Package sink provides output format renderers for routing results.
//
// A "sink" transforms a computed [route.Result] into a final output
// format. This package provides renderers for:
//
//   - SVG: a 2D preview of the placed pads and routed traces
//   - JSON: geometry export for downstream layout tools
//   - DOT: group→pad connectivity as a Graphviz node-link diagram
//
// # SVG Output
//
// [RenderSVG] draws the chip bounding box, both bond pad rows, and all
// wire traces in layout coordinates (micrometers, y-axis up):
//
//	svg := sink.RenderSVG(result, bbox,
//	    sink.WithLabels(),
//	    sink.WithMargin(250),
//	)
//
// The preview is for inspection only; the authoritative geometry export
// is the JSON sink.
//
// # JSON Output
//
// [RenderJSON] exports the complete result (placement, bond ports,
// traces, warnings, stats) as indented JSON. The geometry portion is
// deterministic: identical inputs render byte-identical documents.
//
// # DOT Output
//
// [ToDOT] emits the connectivity between contact groups, their member
// ports, and their bond pads in Graphviz DOT form; [RenderDOT] renders
// it to SVG through the embedded Graphviz engine.
//
// [route.Result]: github.com/lightfab/picroute/pkg/route.Result
package sink
