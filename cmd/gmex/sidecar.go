package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sidecarCmd = &cobra.Command{
	Use:   "sidecar <id> <key>",
	Short: "Print a sidecar attached to an archived message",
	Args:  cobra.ExactArgs(2),
	RunE:  runSidecar,
}

func runSidecar(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	id, key := args[0], args[1]

	value, ok := store.GetSidecar(id, key)
	if !ok {
		return fmt.Errorf("sidecar %q not found for %s", key, id)
	}

	if text, isText := value.(string); isText && !flagJSON {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	return printJSON(cmd.OutOrStdout(), value)
}
