// Shared helpers for gmex commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"time"

	"github.com/mesh-intelligence/gmex/internal/archive"
	"github.com/mesh-intelligence/gmex/internal/gmail"
	"github.com/mesh-intelligence/gmex/internal/paths"
	"github.com/mesh-intelligence/gmex/pkg/types"
)

// openStore resolves the data directory and opens the archive rooted there.
func openStore() (*archive.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	store, err := archive.Open(types.Config{DataDir: dataDir}, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	return store, nil
}

// newGmailClient builds a Gmail client bound to the resolved token path.
func newGmailClient() (*gmail.Client, error) {
	tokenPath, err := paths.ResolveTokenPath()
	if err != nil {
		return nil, fmt.Errorf("resolve token path: %w", err)
	}
	return gmail.NewClient(gmail.Options{TokenPath: tokenPath}, slog.Default()), nil
}

// knownIDs lists the archive once so per-message existence checks stay
// in memory during a batch.
func knownIDs(store types.Store) (map[string]bool, error) {
	entries, err := store.List(types.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.ID] = true
	}
	return known, nil
}

// recordFromMessage flattens a fetched message into archive headers and
// body content.
func recordFromMessage(msg *types.Message) (types.Headers, map[string]any) {
	var headers types.Headers
	headers.Add("Subject", msg.Subject)
	headers.Add("From", msg.From)
	headers.Add("To", msg.To)
	headers.Add("Thread-ID", msg.ThreadID)
	for _, label := range msg.LabelIDs {
		headers.Add("Labels", label)
	}

	content := map[string]any{
		"snippet":     msg.Snippet,
		"body_text":   msg.Body.Text,
		"body_html":   msg.Body.HTML,
		"attachments": msg.Attachments,
	}
	return headers, content
}

// parseMessageDate parses an RFC 5322 Date header, falling back to the
// current time when the header is absent or malformed.
func parseMessageDate(value string) time.Time {
	parsed, err := mail.ParseDate(value)
	if err != nil {
		return time.Now().UTC()
	}
	return parsed.UTC()
}

// printJSON writes v as indented JSON for --json output.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
