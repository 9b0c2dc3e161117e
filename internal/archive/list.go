package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

// listBatchSize is the number of directory entries read per syscall
// batch. Listing must cope with tens of thousands of files without
// materializing anything beyond the surviving filenames.
const listBatchSize = 256

// List scans the archive directory once, filters on filenames alone,
// and only then decodes the survivors into entries. The Since cutoff
// compares the filename against the day-formatted stamp as plain
// strings, which is correct because the zero-padded prefix sorts like
// the calendar; precision is one day by design. Foreign or corrupt
// filenames are skipped silently so one stray file cannot break a bulk
// scan.
func (s *Store) List(opts types.ListOptions) ([]types.Entry, error) {
	var sinceStr string
	if !opts.Since.IsZero() {
		sinceStr = opts.Since.Format(dayLayout)
	}

	dir, err := os.Open(s.root)
	if err != nil {
		return nil, fmt.Errorf("open archive dir: %w", err)
	}
	defer dir.Close()

	var matches []string
	for {
		batch, readErr := dir.ReadDir(listBatchSize)
		for _, ent := range batch {
			if ent.IsDir() {
				continue
			}
			name := ent.Name()
			if !strings.HasSuffix(name, metaSuffix) {
				continue
			}
			if sinceStr != "" && name < sinceStr {
				continue
			}
			if opts.SidecarMissing != "" && s.statSidecar(name, opts.SidecarMissing) {
				continue
			}
			matches = append(matches, name)
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("scan archive dir: %w", readErr)
		}
	}

	sort.Strings(matches)
	if opts.NewestFirst {
		slices.Reverse(matches)
	}
	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}

	entries := make([]types.Entry, 0, len(matches))
	for _, name := range matches {
		id, date, err := parseStem(strings.TrimSuffix(name, metaSuffix))
		if err != nil {
			continue
		}
		entries = append(entries, types.Entry{ID: id, Date: date})
	}
	return entries, nil
}

// statSidecar reports whether the sidecar named key exists for the
// metadata file name. One stat per candidate, no second scan.
func (s *Store) statSidecar(name, key string) bool {
	sc := strings.TrimSuffix(name, metaSuffix) + "." + key
	_, err := os.Stat(filepath.Join(s.root, sc))
	return err == nil
}
