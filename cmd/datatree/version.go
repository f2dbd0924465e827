package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/datatree"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of datatree",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datatree version %s\n", strings.TrimSpace(datatree.Version))
		},
	}
}
