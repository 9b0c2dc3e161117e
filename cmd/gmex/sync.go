package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

var (
	syncLimit  int
	syncDryRun bool
)

var syncCmd = &cobra.Command{
	Use:   "sync [query]",
	Short: "Fetch matching Gmail messages into the archive",
	Long: `Sync searches Gmail with the given query (or the configured default),
fetches every matching message that is not already archived, and saves
each one as a new record. Already-archived messages are skipped, so sync
is safe to run repeatedly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncLimit, "limit", 0, "maximum messages to fetch (default from config)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "list what would be fetched without saving")
}

func runSync(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	client, err := newGmailClient()
	if err != nil {
		return err
	}
	if !client.CheckAuth() {
		return errors.New("not authenticated; run \"gmex token import\" first")
	}

	query := configQuery
	if len(args) == 1 {
		query = args[0]
	}
	limit := configLimit
	if syncLimit > 0 {
		limit = syncLimit
	}

	ctx := cmd.Context()
	summaries, err := client.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search gmail: %w", err)
	}

	known, err := knownIDs(store)
	if err != nil {
		return err
	}

	var fresh []types.Summary
	for _, s := range summaries {
		if !known[s.ID] {
			fresh = append(fresh, s)
		}
	}

	slog.Info("sync starting",
		"query", query,
		"matched", len(summaries),
		"new", len(fresh),
		"skipped", len(summaries)-len(fresh))

	if syncDryRun {
		for _, s := range fresh {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, s.Subject)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Would fetch %d message(s)\n", len(fresh))
		return nil
	}

	var saved, failed int
	for _, s := range fresh {
		msg, err := client.GetMessage(ctx, s.ID)
		if err != nil {
			slog.Error("fetch message failed", "id", s.ID, "error", err)
			failed++
			continue
		}

		headers, content := recordFromMessage(msg)
		if err := store.Save(msg.ID, parseMessageDate(msg.Date), headers, content); err != nil {
			slog.Error("save message failed", "id", msg.ID, "error", err)
			failed++
			continue
		}
		saved++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d message(s), skipped %d, failed %d\n",
		saved, len(summaries)-len(fresh), failed)
	return nil
}
