package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

var (
	listSince          string
	listMissingSidecar string
	listLimit          int
	listNewestFirst    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived messages in date order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listSince, "since", "", "only messages on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listMissingSidecar, "missing-sidecar", "", "only messages without this sidecar key")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum entries to print (0 means all)")
	listCmd.Flags().BoolVar(&listNewestFirst, "newest-first", false, "print newest messages first")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	opts := types.ListOptions{
		SidecarMissing: listMissingSidecar,
		Limit:          listLimit,
		NewestFirst:    listNewestFirst,
	}
	if listSince != "" {
		since, err := time.Parse("2006-01-02", listSince)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
		opts.Since = since
	}

	entries, err := store.List(opts)
	if err != nil {
		return fmt.Errorf("list archive: %w", err)
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tID")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Date.Format(time.RFC3339), e.ID)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d message(s)\n", len(entries))
	return nil
}
