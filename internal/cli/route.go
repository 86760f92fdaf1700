package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/picforge/picforge/pkg/cells"
	"github.com/picforge/picforge/pkg/geometry"
	"github.com/picforge/picforge/pkg/layout"
	"github.com/picforge/picforge/pkg/route"
)

// routeOpts holds the command-line flags for the route command.
type routeOpts struct {
	output   string   // output file path
	name     string   // route component name
	priority []string // candidate cross-sections, most preferred first
}

// routeCommand creates the route command: plan a standalone waveguide
// route through waypoints against the generic technology and write it as
// layout JSON.
func (c *CLI) routeCommand() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:   "route X,Y X,Y [X,Y...]",
		Short: "Plan a waveguide route through waypoints",
		Long: `Plan a waveguide route through the given waypoints, trying each
candidate cross-section in priority order and falling back when one is
geometrically infeasible.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "route.json", "output file")
	cmd.Flags().StringVar(&opts.name, "name", "", "route component name")
	cmd.Flags().StringSliceVar(&opts.priority, "cross-section", []string{cells.XSStrip, cells.XSRib},
		"candidate cross-sections, most preferred first")

	return cmd
}

func (c *CLI) runRoute(args []string, opts *routeOpts) error {
	waypoints := make([]route.Waypoint, len(args))
	for i, arg := range args {
		p, err := parsePoint(arg)
		if err != nil {
			return err
		}
		waypoints[i] = route.Waypoint{Point: p}
	}

	r, err := route.Plan(cells.Generic(), route.PlanSpec{
		Name:      opts.name,
		Waypoints: waypoints,
		Priority:  opts.priority,
	})
	if err != nil {
		printError("Routing failed: %v", err)
		return err
	}

	if err := layout.WriteFile(r.Component, opts.output); err != nil {
		return err
	}

	printSuccess("Routed %s", r.Component.Name())
	printKeyValue("cross-section", r.CrossSection.Name)
	printKeyValue("length", fmt.Sprintf("%.3f um", r.Length))
	printFile(opts.output)
	printNextStep("Inspect it", "picforge info "+opts.output)
	return nil
}

// parsePoint reads an "X,Y" waypoint argument.
func parsePoint(s string) (geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("waypoint %q must be X,Y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("waypoint %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("waypoint %q: %w", s, err)
	}
	return geometry.Point{X: x, Y: y}, nil
}
