package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/datatree/internal/cli"
	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registry",
		Short: "List registered component types",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			reg, err := cli.LoadRegistry(cfg.Registry)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range reg.Types() {
				derived, err := reg.DerivedProperties(name)
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(derived))
				for k := range derived {
					keys = append(keys, k)
				}
				sort.Strings(keys)

				if len(keys) == 0 {
					fmt.Fprintln(out, name)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", name, strings.Join(keys, ","))
			}
			return nil
		},
	}
}
