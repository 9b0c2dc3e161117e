package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/pkg/gmex"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gmex version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]string{"version": gmex.Version})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "gmex v%s\n", gmex.Version)
		return nil
	},
}
