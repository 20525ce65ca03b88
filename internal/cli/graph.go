package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/route/sink"
)

// graphCommand creates the graph command for connectivity diagrams.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format  string
		output  string
		members bool
	)

	cmd := &cobra.Command{
		Use:   "graph <result.json>",
		Short: "Render group→pad connectivity from a routing result",
		Long: `Render group→pad connectivity from a routing result.

The graph command takes a result.json file (produced by 'route') and
emits the connectivity between contact groups and their bond pads as a
Graphviz diagram, either as DOT source or rendered to SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], format, output, members)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&members, "members", false, "include member contact ports as nodes")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, input, format, output string, members bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read result %s: %w", input, err)
	}
	result, err := sink.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	dot := sink.ToDOT(result, sink.DOTOptions{Members: members})

	var out []byte
	switch format {
	case "dot":
		out = []byte(dot)
	case "svg":
		out, err = sink.RenderDOT(cmd.Context(), dot)
		if err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown graph format %q", format)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Graph rendered")
	printFile(outputPath)
	return nil
}
