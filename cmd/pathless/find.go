package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathless/astar"
	"github.com/katalvlaran/pathless/scenario"
)

type findOptions struct {
	scenario string
	file     string
	name     string
	db       string
	optimize bool
}

func newFindCmd(root *rootOptions) *cobra.Command {
	opts := &findOptions{}
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a route through a scenario and print it",
		Long: `Find loads one scenario, runs A* between its start and end cells and
prints the grid with the route marked, followed by the route and its cost.

Exactly one source is required:
  --scenario NAME   a built-in scenario (simple, lShape, maze, impossible)
  --file PATH       a .yaml, .yml or .toml scenario file
  --name NAME       a scenario saved in the database (see --db)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFind(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "Built-in scenario name")
	cmd.Flags().StringVar(&opts.file, "file", "", "Scenario file")
	cmd.Flags().StringVar(&opts.name, "name", "", "Stored scenario name")
	cmd.Flags().StringVar(&opts.db, "db", "", "Scenario database (default from config)")
	cmd.Flags().BoolVar(&opts.optimize, "optimize", false, "Also print the simplified waypoints")
	cmd.MarkFlagsMutuallyExclusive("scenario", "file", "name")
	cmd.MarkFlagsOneRequired("scenario", "file", "name")
	return cmd
}

func loadSource(cmd *cobra.Command, root *rootOptions, opts *findOptions) (scenario.Scenario, error) {
	switch {
	case opts.scenario != "":
		return scenario.Builtin(opts.scenario)
	case opts.file != "":
		return scenario.Load(opts.file)
	default:
		st, err := root.openStore(opts.db)
		if err != nil {
			return scenario.Scenario{}, err
		}
		defer st.Close()
		return st.Get(cmd.Context(), opts.name)
	}
}

func runFind(cmd *cobra.Command, root *rootOptions, opts *findOptions) error {
	sc, err := loadSource(cmd, root, opts)
	if err != nil {
		return err
	}
	if sc.Width == 0 || sc.Height == 0 {
		sc.Width, sc.Height = root.cfg.Grid.Width, root.cfg.Grid.Height
	}
	g, err := sc.NewGrid()
	if err != nil {
		return err
	}
	pf, err := astar.New(g, astar.WithLogger(root.logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	path, err := pf.FindPathFromGrid()
	if errors.Is(err, astar.ErrNoPath) {
		fmt.Fprint(out, g.String())
		fmt.Fprintf(out, "no path (explored=%d)\n", pf.LastResult().Expanded)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", sc.Name, err)
	}

	fmt.Fprint(out, g.String())
	printPath(out, "path", path)
	if opts.optimize {
		printPath(out, "optimized", pf.OptimizePath(path))
	}
	stats := pf.Stats(path)
	fmt.Fprintf(out, "length=%d cost=%.3f distance=%.3f explored=%d\n",
		stats.PathLength, pf.LastResult().Cost, stats.PathCost, stats.NodesExplored)
	return nil
}

func printPath(w io.Writer, label string, path astar.Path) {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(parts, " "))
}
