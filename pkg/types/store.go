package types

import (
	"errors"
	"time"
)

// Store is the archive interface consumed by the CLI and the format
// exporters. The filesystem implementation lives in internal/archive.
type Store interface {
	// Save persists a record as a metadata/body file pair, replacing any
	// previous pair for the same id wholesale.
	Save(id string, date time.Time, headers Headers, content any) error

	// Exists reports whether a metadata file is present for the id.
	Exists(id string) bool

	// Get returns the record's header fields, with content keys merged
	// in when includeContent is set. Returns ErrRecordNotFound if no
	// metadata file matches the id.
	Get(id string, includeContent bool) (Fields, error)

	// List scans the archive directory and returns matching entries in
	// chronological order.
	List(opts ListOptions) ([]Entry, error)

	// Attach writes a sidecar file next to an existing record.
	// Returns ErrRecordNotFound if the record does not exist.
	Attach(id, key string, data any) error

	// HasSidecar reports whether the named sidecar exists for the id.
	HasSidecar(id, key string) bool

	// GetSidecar returns a sidecar's data and true, or nil and false on
	// any failure (missing record, missing file, unreadable content).
	GetSidecar(id, key string) (any, bool)
}

// Store errors.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmptyID        = errors.New("record id must not be empty")
	ErrDateConflict   = errors.New("record already exists with a different date")
)
