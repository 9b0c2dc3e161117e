package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

func TestAttachStructuredData(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 1, 12, 15, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save("attach_test", date, nil, map[string]any{"body": "Content"}))

	data := map[string]any{
		"status":         "processed",
		"worker_version": "1.0",
		"tags":           []string{"extracted", "verified"},
	}
	require.NoError(t, s.Attach("attach_test", "processed.json", data))

	// Sidecar shares the record's stem with the key as suffix.
	assert.FileExists(t, filepath.Join(s.Root(), "20260112-150000_attach_test.processed.json"))

	loaded, ok := s.GetSidecar("attach_test", "processed.json")
	require.True(t, ok)
	m, ok := loaded.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "processed", m["status"])
	assert.Equal(t, "1.0", m["worker_version"])
}

func TestAttachRawText(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("text_attach", time.Now(), nil, nil))

	require.NoError(t, s.Attach("text_attach", "checksum.txt", "abc-123-xyz"))

	matches, err := filepath.Glob(filepath.Join(s.Root(), "*_text_attach.checksum.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	raw, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "abc-123-xyz", string(raw))
}

func TestAttachMissingParent(t *testing.T) {
	s := newTestStore(t)
	err := s.Attach("ghost", "processed.json", map[string]any{"x": 1})
	assert.ErrorIs(t, err, types.ErrRecordNotFound)
}

func TestSidecarLifecycle(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 1, 12, 15, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save("lifecycle", date, nil, map[string]any{"body": "Content"}))

	// Before attach the record counts as pending work.
	entries, err := s.List(types.ListOptions{SidecarMissing: "processed.json"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.False(t, s.HasSidecar("lifecycle", "processed.json"))

	require.NoError(t, s.Attach("lifecycle", "processed.json", map[string]any{"status": "success"}))

	entries, err = s.List(types.ListOptions{SidecarMissing: "processed.json"})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.True(t, s.HasSidecar("lifecycle", "processed.json"))

	loaded, ok := s.GetSidecar("lifecycle", "processed.json")
	require.True(t, ok)
	assert.Equal(t, "success", loaded.(map[string]any)["status"])
}

func TestGetSidecarTextRetrieval(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("text_test", time.Now(), nil, nil))
	require.NoError(t, s.Attach("text_test", "status.txt", "OK"))

	got, ok := s.GetSidecar("text_test", "status.txt")
	require.True(t, ok)
	assert.Equal(t, "OK", got)
}

func TestGetSidecarAbsent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("bare", time.Now(), nil, nil))

	tests := []struct {
		name string
		id   string
		key  string
	}{
		{name: "missing sidecar", id: "bare", key: "processed.json"},
		{name: "missing parent", id: "nobody", key: "processed.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.GetSidecar(tt.id, tt.key)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestGetSidecarCorruptJSON(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 5, 5, 5, 5, 5, 0, time.UTC)
	require.NoError(t, s.Save("corrupt", date, nil, nil))

	path := filepath.Join(s.Root(), "20260505-050505_corrupt.broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, ok := s.GetSidecar("corrupt", "broken.json")
	assert.False(t, ok)
	assert.Nil(t, got)
	// The existence probe still answers true; only the read degrades.
	assert.True(t, s.HasSidecar("corrupt", "broken.json"))
}

func TestHasSidecarWithoutParentLookup(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.HasSidecar("nobody", "anything.txt"))
}

func TestAttachScalarAsText(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("scalar", time.Now(), nil, nil))
	require.NoError(t, s.Attach("scalar", "count.txt", 42))

	got, ok := s.GetSidecar("scalar", "count.txt")
	require.True(t, ok)
	assert.Equal(t, "42", got)
}
