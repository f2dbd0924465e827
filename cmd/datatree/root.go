package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/datatree/internal/config"
	"github.com/aretw0/datatree/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datatree",
		Short: "datatree builds the entity tree used to evaluate page bindings",
		Long: `datatree turns a page seed (actions, widgets, meta state, page list and app data)
into the flat, name keyed entity tree consumed by the binding evaluator.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./datatree.yaml)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("registry", "", "YAML file with extra component types")
	flags.Bool("strict", false, "Fail on entity name collisions")
	flags.Bool("allow-unknown-types", false, "Build widgets whose type is not registered")
	flags.Bool("run-dispatchers", false, "Attach the run capability to actions")

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newRegistryCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves config for cmd, honoring --config and explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(level), nil
}
