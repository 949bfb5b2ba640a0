package main

import (
	"fmt"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathless/config"
	"github.com/katalvlaran/pathless/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr, db string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve interactive pathfinding sessions over websockets",
		Long: `Serve listens for websocket connections on /ws. Every connection gets its
own grid sized from the config and can edit cells, load scenarios and
request routes. Stored scenarios come from the database.

Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				if err := applyAddr(&root.cfg.Server, addr); err != nil {
					return err
				}
			}
			st, err := root.openStore(db)
			if err != nil {
				return err
			}
			defer st.Close()

			srv, err := server.New(root.cfg, server.WithLogger(root.logger), server.WithStore(st))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address host:port (overrides config)")
	cmd.Flags().StringVar(&db, "db", "", "Scenario database (default from config)")
	return cmd
}

// applyAddr overrides host and port from a host:port string.
func applyAddr(sc *config.ServerConfig, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid --addr %q: port must be in 1..65535", addr)
	}
	sc.Host, sc.Port = host, port
	return nil
}
