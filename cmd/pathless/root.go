package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathless/config"
	"github.com/katalvlaran/pathless/logging"
	"github.com/katalvlaran/pathless/scenario"
)

// rootOptions holds the global flags and what PersistentPreRunE derives
// from them.
type rootOptions struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pathless",
		Short: "Weighted A* pathfinding on grid maps",
		Long: `pathless finds least-cost routes across grids of walls and traffic,
imports and exports scenario files, and serves interactive sessions over
websockets.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Config file (yaml, toml or json); defaults to ./pathless.* when present")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Log level: debug, info, warn or error (overrides config)")

	cmd.AddCommand(newFindCmd(opts), newServeCmd(opts), newScenariosCmd(opts))
	return cmd
}

// load reads the configuration and builds the logger writing to w.
func (o *rootOptions) load(w io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	o.cfg = cfg
	o.logger = logging.New(w, logging.LevelFromString(cfg.Logging.Level), cfg.Logging.Format)
	return nil
}

// openStore opens dbPath, or the configured storage path when it is empty.
func (o *rootOptions) openStore(dbPath string) (*scenario.Store, error) {
	if dbPath == "" {
		dbPath = o.cfg.Storage.Path
	}
	return scenario.Open(dbPath, o.logger)
}
