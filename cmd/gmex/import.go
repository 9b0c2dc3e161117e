package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/internal/mbox"
)

var importLimit int

var importCmd = &cobra.Command{
	Use:   "import <file.mbox>",
	Short: "Import messages from a local mbox file",
	Long: `Import reads an mbox file message by message and archives every
message not already present. Messages without a Message-ID header are
assigned a generated identifier. Malformed messages are counted and
skipped without aborting the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().IntVar(&importLimit, "limit", 0, "stop after this many messages (0 means all)")
}

func runImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	known, err := knownIDs(store)
	if err != nil {
		return err
	}

	reader, err := mbox.NewReader(mbox.Options{Path: args[0], Limit: importLimit}, slog.Default())
	if err != nil {
		return err
	}

	envelopes := make(chan mbox.Envelope, 32)
	streamErr := make(chan error, 1)
	go func() {
		streamErr <- reader.Stream(cmd.Context(), envelopes)
		close(envelopes)
	}()

	var saved, skipped, failed int
	for env := range envelopes {
		if env.Err != nil {
			slog.Warn("skipping malformed message", "error", env.Err)
			failed++
			continue
		}
		if known[env.ID] {
			skipped++
			continue
		}

		if err := store.Save(env.ID, env.Date, env.Headers, env.Content); err != nil {
			slog.Error("save message failed", "id", env.ID, "error", err)
			failed++
			continue
		}
		known[env.ID] = true
		saved++
	}

	if err := <-streamErr; err != nil {
		return fmt.Errorf("read mbox: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d message(s), skipped %d, failed %d\n",
		saved, skipped, failed)
	return nil
}
