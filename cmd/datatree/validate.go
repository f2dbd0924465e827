package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/datatree/internal/cli"
	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/formula"
	"github.com/aretw0/datatree/pkg/seed"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <seed>",
		Short: "Check a seed for build problems",
		Long: `Runs a strict build of the seed: name collisions, missing identifiers,
unknown widget types and unserializable bound values are reported.
Bound widget properties that still reference "this" after the build are
listed as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if err := factory.Validate(in); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			tree, err := factory.Create(in)
			if err != nil {
				return err
			}
			if err := reportSelfReferences(cmd.OutOrStdout(), tree); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seed is valid! ✅")
			return nil
		},
	}
}

// reportSelfReferences prints a warning for every bound widget property whose
// expression still uses the self token.
func reportSelfReferences(w io.Writer, tree domain.Tree) error {
	for _, name := range tree.Names() {
		widget, ok := tree.Widget(name)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(widget.DynamicBindings))
		for k, bound := range widget.DynamicBindings {
			if bound {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			expr, ok := widget.Properties[k].(string)
			if !ok {
				continue
			}
			n, err := formula.References(expr)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", name, k, err)
			}
			if n > 0 {
				fmt.Fprintf(w, "⚠️  %s.%s: %d unresolved %q reference(s)\n", name, k, n, formula.SelfToken)
			}
		}
	}
	return nil
}
