package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

var showContent bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived message as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showContent, "content", false, "include the message body alongside the metadata")
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	fields, err := store.Get(args[0], showContent)
	if err != nil {
		if errors.Is(err, types.ErrRecordNotFound) {
			return fmt.Errorf("message %q not found", args[0])
		}
		return fmt.Errorf("get message: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), fields)
}
