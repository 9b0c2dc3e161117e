// Package archive implements the filesystem-backed email record store.
// Records are metadata/body file pairs named by convention; the
// directory itself is the only index. Lookups glob on the id suffix,
// listings scan and filter filenames without reading file contents.
package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

// Store is the archive rooted at a single directory. It is safe for
// concurrent readers; concurrent writers to the same id must be
// serialized by the caller (the assumed deployment is single-writer).
type Store struct {
	root   string
	logger *slog.Logger
}

var _ types.Store = (*Store)(nil)

// Open returns a Store for cfg.DataDir, creating the directory and any
// missing parents. The data directory must already be resolved; the
// flag/env/XDG chain lives in internal/paths and the CLI.
func Open(cfg types.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{root: cfg.DataDir, logger: logger}, nil
}

// Root returns the archive directory.
func (s *Store) Root() string {
	return s.root
}

// lookupMeta finds the metadata filename for an id by globbing
// "*_{id}.meta". The caller never knows the stamp prefix, so a targeted
// stat is impossible. Candidates are verified against the id decoded
// from the stem; among duplicates the first lexical match wins.
func (s *Store) lookupMeta(id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.root, "*_"+id+metaSuffix))
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", id, err)
	}
	for _, m := range matches {
		name := filepath.Base(m)
		gotID, _, err := parseStem(strings.TrimSuffix(name, metaSuffix))
		if err != nil || gotID != id {
			continue
		}
		return name, nil
	}
	return "", types.ErrRecordNotFound
}

// Exists reports whether a metadata file is present for the id.
func (s *Store) Exists(id string) bool {
	_, err := s.lookupMeta(id)
	return err == nil
}
