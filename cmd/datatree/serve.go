package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/datatree/internal/cli"
	"github.com/aretw0/datatree/internal/logging"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Serves tree builds, stored snapshots and Prometheus metrics over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			level, _ := logging.ParseLevel(cfg.LogLevel)
			logger := logging.NewJSON(os.Stderr, level)

			srv, closeStore, err := cli.NewServer(cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return cli.Serve(ctx, srv, logger)
		},
	}
	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().String("store", "memory", "Snapshot store: memory or redis")
	return cmd
}
