package types

import "time"

// Entry identifies one archived record in a listing. Both values are
// decoded from the metadata filename alone; no file content is read.
type Entry struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
}

// ListOptions narrows and orders a List call.
type ListOptions struct {
	// Since drops records older than the given day. The comparison is
	// done on the filename date prefix at day granularity; callers that
	// need time-of-day precision must post-filter.
	Since time.Time

	// SidecarMissing keeps only records that do not yet have the named
	// sidecar, for "work remaining" scans.
	SidecarMissing string

	// Limit truncates the result after sorting; zero means no limit.
	Limit int

	// NewestFirst reverses the chronological sort order.
	NewestFirst bool
}
