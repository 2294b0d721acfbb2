package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/portalgrid/internal/config"
	"github.com/katalvlaran/portalgrid/internal/logging"
	"github.com/katalvlaran/portalgrid/internal/solver"
)

// runFlags mirrors config.Config on the command line. A flag overrides the
// config file only when it was set explicitly.
type runFlags struct {
	configPath  string
	width       int
	height      int
	seed        int64
	threshold   float64
	growth      string
	passableOut string
	graphOut    string
	scale       int
	from        []int
	to          []int
	weighted    bool
	logLevel    string
	logFormat   string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var f runFlags
	def := config.Default()

	root := &cobra.Command{
		Use:   "portalgrid",
		Short: "Decompose a cost grid into a portal rectangle graph",
		Long: `portalgrid covers the passable cells of a cost grid with maximal
rectangles ("portals") and links rectangles whose borders touch.

Commands:
  solve  - build the graph, print the statistics and write debug images
  stats  - build the graph and print the statistics only`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML config file; flags override its values")
	pf.IntVar(&f.width, "width", def.Grid.Width, "grid width in cells")
	pf.IntVar(&f.height, "height", def.Grid.Height, "grid height in cells")
	pf.Int64Var(&f.seed, "seed", def.Grid.Seed, "random grid seed")
	pf.Float64Var(&f.threshold, "threshold", def.Portal.Threshold, "cells with cost below this are passable")
	pf.StringVar(&f.growth, "growth", def.Portal.Growth, "vertical growth policy: stop or clip")
	pf.IntSliceVar(&f.from, "from", nil, "route start cell as x,y")
	pf.IntSliceVar(&f.to, "to", nil, "route finish cell as x,y")
	pf.BoolVar(&f.weighted, "weighted", false, "minimise centroid distance instead of hops")
	pf.StringVar(&f.logLevel, "log-level", def.Log.Level, "log level: debug, info, warn, error")
	pf.StringVar(&f.logFormat, "log-format", def.Log.Format, "log format: text or json")

	solve := &cobra.Command{
		Use:   "solve",
		Short: "Build the portal graph and write debug images",
		Long: `Build the portal graph, print portals, valid-pixels and speed-factor,
and write the passable mask and the scaled graph image.

Examples:
  portalgrid solve
  portalgrid solve --graph-out graph.tga --scale 8
  portalgrid solve --from 0,0 --to 99,99 --weighted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, ctx, err := prepare(cmd, &f)
			if err != nil {
				return err
			}
			rep, err := solver.Run(ctx, cfg)
			if err != nil {
				return classify(err)
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	solve.Flags().StringVar(&f.passableOut, "passable-out", def.Output.Passable, "passable mask image (.png or .tga); empty skips")
	solve.Flags().StringVar(&f.graphOut, "graph-out", def.Output.Graph, "graph image (.png or .tga); empty skips")
	solve.Flags().IntVar(&f.scale, "scale", def.Output.Scale, "pixels per cell in the graph image")

	var asJSON bool
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Build the portal graph and print its statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, ctx, err := prepare(cmd, &f)
			if err != nil {
				return err
			}
			cfg.Output.Passable, cfg.Output.Graph = "", ""
			rep, err := solver.Run(ctx, cfg)
			if err != nil {
				return classify(err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(rep); err != nil {
					return runtimeError(err)
				}
				return nil
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	stats.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	root.AddCommand(solve, stats)
	return root
}

// prepare resolves the effective configuration and a context carrying the
// configured logger.
func prepare(cmd *cobra.Command, f *runFlags) (config.Config, context.Context, error) {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return config.Config{}, nil, usageError(err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, nil, usageError(err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cfg, logging.WithLogger(ctx, logger), nil
}

func resolveConfig(cmd *cobra.Command, f *runFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Grid.Width = f.width
	}
	if changed("height") {
		cfg.Grid.Height = f.height
	}
	if changed("seed") {
		cfg.Grid.Seed = f.seed
	}
	if changed("threshold") {
		cfg.Portal.Threshold = f.threshold
	}
	if changed("growth") {
		cfg.Portal.Growth = f.growth
	}
	if changed("passable-out") {
		cfg.Output.Passable = f.passableOut
	}
	if changed("graph-out") {
		cfg.Output.Graph = f.graphOut
	}
	if changed("scale") {
		cfg.Output.Scale = f.scale
	}
	if changed("from") || changed("to") {
		from, err := point("from", f.from, cfg.Route.From)
		if err != nil {
			return cfg, err
		}
		to, err := point("to", f.to, cfg.Route.To)
		if err != nil {
			return cfg, err
		}
		cfg.Route.Enabled, cfg.Route.From, cfg.Route.To = true, from, to
	}
	if changed("weighted") {
		cfg.Route.Weighted = f.weighted
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	return cfg, cfg.Validate()
}

// point converts an x,y flag value; an unset flag keeps fallback.
func point(name string, v []int, fallback [2]int) ([2]int, error) {
	switch len(v) {
	case 0:
		return fallback, nil
	case 2:
		return [2]int{v[0], v[1]}, nil
	default:
		return fallback, fmt.Errorf("--%s wants x,y, got %v", name, v)
	}
}

// classify maps solver failures to exit codes.
func classify(err error) error {
	if errors.Is(err, config.ErrInvalid) {
		return usageError(err)
	}
	return runtimeError(err)
}

func printReport(w io.Writer, rep *solver.Report) {
	fmt.Fprintf(w, "portals: %d\n", rep.Stats.Rectangles)
	fmt.Fprintf(w, "valid-pixels: %d\n", rep.Stats.PassableCells)
	fmt.Fprintf(w, "speed-factor: %.2f\n", rep.Stats.SpeedFactor)
	fmt.Fprintf(w, "edges: %d\n", rep.Stats.Edges)
	if rep.Route != nil {
		fmt.Fprintf(w, "route: %d hops, length %.2f\n", rep.Route.Hops, rep.Route.Length)
	}
	for _, p := range rep.Outputs {
		fmt.Fprintf(w, "wrote: %s\n", p)
	}
}
