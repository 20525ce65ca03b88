package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lightfab/picroute/pkg/netlist"
	"github.com/lightfab/picroute/pkg/port"
	"github.com/lightfab/picroute/pkg/route"
	"github.com/lightfab/picroute/pkg/route/sink"
)

// routeCommand creates the route command, the main entry point of the
// pipeline.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		paramsFile string
		output     string
		svgOut     string
		portsOut   string
		labels     bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "route <ports.json> <netlist.toml|json>",
		Short: "Route electrical contacts to peripheral bond pads",
		Long: `Route electrical contacts to peripheral bond pads.

The route command takes a ports file (the port registry and bounding box
exported by the optical layout tool) and a netlist (named groups of
electrical contact names). It places one bond pad per group along the
left or bottom chip edge and generates Manhattan metal traces from each
group to its pad.

The output is a result.json file holding the complete placement and
trace geometry. Results are cached locally; identical inputs return the
cached geometry.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(cmd.Context(), routeArgs{
				portsFile:   args[0],
				netlistFile: args[1],
				paramsFile:  paramsFile,
				output:      output,
				svgOut:      svgOut,
				portsOut:    portsOut,
				labels:      labels,
				noCache:     noCache,
				refresh:     refresh,
			})
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "layout parameter file (TOML)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <netlist>.result.json)")
	cmd.Flags().StringVar(&svgOut, "svg", "", "also write an SVG preview to this file")
	cmd.Flags().StringVar(&portsOut, "ports-out", "", "write the updated ports file (with bond pad ports) to this path")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw group names on the SVG preview")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and re-route")

	return cmd
}

type routeArgs struct {
	portsFile   string
	netlistFile string
	paramsFile  string
	output      string
	svgOut      string
	portsOut    string
	labels      bool
	noCache     bool
	refresh     bool
}

// runRoute loads the inputs, executes the pipeline, and writes outputs.
func (c *CLI) runRoute(ctx context.Context, a routeArgs) error {
	reg, bbox, err := port.ImportExchange(a.portsFile)
	if err != nil {
		return fmt.Errorf("load ports: %w", err)
	}

	table, err := netlist.Load(a.netlistFile)
	if err != nil {
		return fmt.Errorf("load netlist: %w", err)
	}

	params, err := loadParams(a.paramsFile)
	if err != nil {
		return fmt.Errorf("load params: %w", err)
	}

	runner := c.newRunner(a.noCache)

	spinner := newSpinner(ctx, fmt.Sprintf("Routing %d groups...", table.Len()))
	spinner.Start()

	result, err := runner.Execute(ctx, route.Input{
		Registry: reg,
		BBox:     bbox,
		Netlist:  table,
	}, route.Options{Params: params, Refresh: a.refresh})
	if err != nil {
		spinner.StopWithError("Routing failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, w := range result.Warnings {
		if w.Port != "" {
			printWarning("%s: group %q port %q", w.Reason, w.Group, w.Port)
		} else {
			printWarning("%s: group %q", w.Reason, w.Group)
		}
	}

	outputPath := a.output
	if outputPath == "" {
		base := strings.TrimSuffix(a.netlistFile, filepath.Ext(a.netlistFile))
		outputPath = base + ".result.json"
	}

	data, err := sink.RenderJSON(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Routing complete")
	printFile(outputPath)

	if a.svgOut != "" {
		opts := []sink.SVGOption{}
		if a.labels {
			opts = append(opts, sink.WithLabels())
		}
		if err := os.WriteFile(a.svgOut, sink.RenderSVG(result, bbox, opts...), 0o644); err != nil {
			return fmt.Errorf("write SVG %s: %w", a.svgOut, err)
		}
		printFile(a.svgOut)
	}

	if a.portsOut != "" {
		if err := port.ExportExchange(reg, bbox, a.portsOut); err != nil {
			return fmt.Errorf("write ports %s: %w", a.portsOut, err)
		}
		printFile(a.portsOut)
	}

	printStats(result.Stats.Groups, result.Stats.Traces, result.CacheHit)
	printNewline()
	printNextStep("Render", "picroute graph "+outputPath)

	return nil
}
