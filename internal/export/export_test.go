package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gmex/internal/archive"
	"github.com/mesh-intelligence/gmex/pkg/types"
)

func seededStore(t *testing.T) types.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := archive.Open(types.Config{DataDir: t.TempDir()}, logger)
	require.NoError(t, err)

	var h1 types.Headers
	h1.Add("Subject", "Quarterly report")
	h1.Add("From", "alice@example.com")
	h1.Add("To", "bob@example.com")
	h1.Add("Thread-ID", "t1")
	require.NoError(t, s.Save("m1", time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC), h1,
		map[string]any{"body_text": "Numbers attached & reviewed.\n<careful>"}))

	var h2 types.Headers
	h2.Add("From", "carol@example.com")
	require.NoError(t, s.Save("m2", time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC), h2,
		map[string]any{"body_text": "Second body."}))

	return s
}

func TestCollect(t *testing.T) {
	s := seededStore(t)

	items, err := Collect(s, types.ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, "t1", items[0].ThreadID)
	assert.Equal(t, "Quarterly report", items[0].Subject)
	assert.Equal(t, "2026-01-01T09:00:00Z", items[0].Date)
	assert.Equal(t, "Numbers attached & reviewed.\n<careful>", items[0].BodyText)

	// Missing headers flatten to empty strings, not errors.
	assert.Empty(t, items[1].Subject)
	assert.Empty(t, items[1].ThreadID)
}

func TestCollectNewestFirst(t *testing.T) {
	s := seededStore(t)

	items, err := Collect(s, types.ListOptions{NewestFirst: true})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "m2", items[0].ID)
}

func TestWriteCSV(t *testing.T) {
	s := seededStore(t)
	items, err := Collect(s, types.ListOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, items))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Message ID", "Thread ID", "From", "To", "Subject"}, rows[0])
	assert.Equal(t, []string{"2026-01-01T09:00:00Z", "m1", "t1", "alice@example.com", "bob@example.com", "Quarterly report"}, rows[1])
}

func TestWriteHTML(t *testing.T) {
	s := seededStore(t)
	items, err := Collect(s, types.ListOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, items))
	out := buf.String()

	assert.Contains(t, out, "Email Export (2 messages)")
	assert.Contains(t, out, "Quarterly report")
	// The body must arrive escaped, never as raw markup.
	assert.Contains(t, out, "&lt;careful&gt;")
	assert.NotContains(t, out, "\n<careful>")
	// Records without a subject render the placeholder.
	assert.Contains(t, out, "(No Subject)")
}

func TestWriteText(t *testing.T) {
	s := seededStore(t)
	items, err := Collect(s, types.ListOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, items))
	out := buf.String()

	assert.Contains(t, out, "EMAIL EXPORT (2 messages)")
	assert.Contains(t, out, "[1] Quarterly report")
	assert.Contains(t, out, "From: alice@example.com")
	assert.Contains(t, out, "[2] (No Subject)")
	assert.Contains(t, out, strings.Repeat("=", 80))
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
