package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/lightfab/picroute/pkg/route"
	"github.com/lightfab/picroute/pkg/route/pads"
)

// DOTOptions configures connectivity diagram output.
type DOTOptions struct {
	// Members includes one node per member contact port. When false,
	// only groups and their bond pads are shown.
	Members bool
}

// ToDOT converts a routing result to Graphviz DOT form, showing which
// contact groups landed on which edge and pad. Member contacts point at
// their group; each group points at its bond pad.
func ToDOT(res *route.Result, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph interconnect {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	writeRow(&buf, res.Placement.Left, opts)
	writeRow(&buf, res.Placement.Bottom, opts)

	buf.WriteString("}\n")
	return buf.String()
}

func writeRow(buf *bytes.Buffer, row pads.Row, opts DOTOptions) {
	if len(row.Order) == 0 {
		return
	}

	fmt.Fprintf(buf, "  subgraph cluster_%s {\n", row.Edge)
	fmt.Fprintf(buf, "    label=%q;\n", string(row.Edge)+" edge")
	buf.WriteString("    style=dashed;\n")
	for _, p := range row.Pads {
		fmt.Fprintf(buf, "    %q [fillcolor=gold];\n", p.Port.Name)
	}
	buf.WriteString("  }\n")

	for i, g := range row.Order {
		fmt.Fprintf(buf, "  %q;\n", g.Name)
		fmt.Fprintf(buf, "  %q -> %q;\n", g.Name, row.Pads[i].Port.Name)
		if !opts.Members {
			continue
		}
		for _, m := range g.Members {
			fmt.Fprintf(buf, "  %q [shape=ellipse, fillcolor=lightgrey, fontsize=10];\n", m.Name)
			fmt.Fprintf(buf, "  %q -> %q;\n", m.Name, g.Name)
		}
	}
	buf.WriteString("\n")
}

// RenderDOT renders a DOT graph to SVG using the embedded Graphviz
// engine.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
