package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/datatree/internal/cli"
	"github.com/aretw0/datatree/internal/query"
	"github.com/aretw0/datatree/pkg/seed"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <seed>",
		Short: "Build the entity tree for a seed file",
		Long: `Reads a JSON or YAML seed and prints the entity tree as JSON.
With --path only the value at that path (e.g. Table1.selectedRow) is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}
	cmd.Flags().String("path", "", "Print only the value at this tree path")
	cmd.Flags().Bool("pretty", false, "Indent the JSON output")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in, err := seed.LoadFile(args[0])
	if err != nil {
		return err
	}

	factory, err := cli.NewFactory(cfg, logger)
	if err != nil {
		return err
	}

	tree, err := factory.Create(in)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	raw, err := tree.Encode()
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("path"); path != "" {
		result, err := query.GetJSON(raw, path)
		if err != nil {
			return err
		}
		raw = []byte(result.Raw)
	}

	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		raw = buf.Bytes()
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
