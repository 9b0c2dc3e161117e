package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

// newlines collapses embedded line breaks in header values so each
// header stays one physical line in the metadata file.
var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Save persists a record as a body file then a metadata file, each
// committed via temp-write-and-rename. The body goes first: a crash
// between the two renames leaves an undiscoverable orphaned body, never
// a metadata file pointing at a missing one. Re-saving an id with the
// same date replaces both files wholesale; a different date is rejected
// with ErrDateConflict because it would orphan the old pair under a new
// stem and make lookups ambiguous.
func (s *Store) Save(id string, date time.Time, headers types.Headers, content any) error {
	if id == "" {
		return types.ErrEmptyID
	}
	st := stem(id, date)

	existing, err := s.lookupMeta(id)
	switch {
	case err == nil:
		if strings.TrimSuffix(existing, metaSuffix) != st {
			return fmt.Errorf("save %s: %w", id, types.ErrDateConflict)
		}
	case errors.Is(err, types.ErrRecordNotFound):
		// First save for this id.
	default:
		return err
	}

	body, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	if err := s.writeFileAtomic(st+bodySuffix, body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := s.writeFileAtomic(st+metaSuffix, encodeMeta(id, date, headers)); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	s.logger.Debug("record saved", "id", id, "stem", st)
	return nil
}

// encodeMeta renders the line-oriented metadata document. The canonical
// ID and Date lines come first; reserved header names are skipped so
// the store's own lines always win.
func encodeMeta(id string, date time.Time, headers types.Headers) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "ID: %s\nDate: %s\n", id, date.Format(time.RFC3339))
	for _, f := range headers {
		if f.Name == "ID" || f.Name == "Date" {
			continue
		}
		for _, v := range f.Values {
			fmt.Fprintf(&b, "%s: %s\n", f.Name, newlines.Replace(v))
		}
	}
	return b.Bytes()
}

// writeFileAtomic writes data to a hidden temp sibling in the archive
// directory, syncs it, and renames it into place. The temp file is
// removed on every failure path so no .tmp files accumulate; listings
// exclude them anyway by requiring the exact .meta suffix.
func (s *Store) writeFileAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.root, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.root, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
