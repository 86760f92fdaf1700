package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/picforge/picforge/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output  string // output file path; defaults to <netlist>.json
	noCache bool   // disable the layout cache
	refresh bool   // rebuild even when a cached layout exists
}

// buildCommand creates the build command. It runs the full pipeline:
// load the TOML netlist, realize it against the generic technology, and
// write the exported layout JSON.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [netlist.toml]",
		Short: "Build a netlist into a layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: netlist name with .json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even when a cached layout exists")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, netlistPath string, opts *buildOpts) error {
	logger := loggerFromContext(cmd.Context())
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	sp := newSpinnerWithContext(cmd.Context(), "Building "+filepath.Base(netlistPath))
	sp.Start()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		NetlistPath: netlistPath,
		Refresh:     opts.refresh,
		Logger:      logger,
	})
	if err != nil {
		sp.StopWithError(fmt.Sprintf("Build failed: %v", err))
		return err
	}
	sp.Stop()

	out := opts.output
	if out == "" {
		out = outputPath(netlistPath)
	}
	if err := os.WriteFile(out, result.Data, 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	prog.done(fmt.Sprintf("Realized %d instances", result.Stats.InstanceCount))

	printSuccess("Built %s", result.Netlist.Name)
	printBuildStats(result)
	printFile(out)
	printNextStep("Inspect it", "picforge info "+out)
	return nil
}

// outputPath derives the default layout output path from the netlist path.
func outputPath(netlistPath string) string {
	base := strings.TrimSuffix(netlistPath, filepath.Ext(netlistPath))
	return base + ".json"
}

// printBuildStats prints instance/cell counts and cache status on one line.
func printBuildStats(result *pipeline.Result) {
	var parts []string
	if result.Stats.InstanceCount > 0 {
		parts = append(parts, fmt.Sprintf("%d instances", result.Stats.InstanceCount))
	}
	if result.Stats.CellCount > 0 {
		parts = append(parts, fmt.Sprintf("%d cells", result.Stats.CellCount))
	}
	if result.Component != nil {
		parts = append(parts, fmt.Sprintf("%d ports", result.Component.PortCount()))
	}

	status := iconFresh
	statusStyle := styleComputed
	if result.CacheHit {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}
