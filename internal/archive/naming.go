// Filename encoding for the archive. Every file belonging to a record
// shares the stem "{YYYYMMDD-HHMMSS}_{id}"; the zero-padded stamp makes
// lexicographic filename order equal calendar order, which is what List
// sorts and filters on.
package archive

import (
	"fmt"
	"strings"
	"time"
)

const (
	stampLayout = "20060102-150405"
	dayLayout   = "20060102"

	metaSuffix = ".meta"
	bodySuffix = ".body"
)

// stem returns the shared filename stem for a record.
func stem(id string, date time.Time) string {
	return date.Format(stampLayout) + "_" + id
}

// parseStem splits a stem at the first underscore into its id and date.
// Anything that does not decode is a foreign file, not an error the
// caller should surface.
func parseStem(s string) (string, time.Time, error) {
	stamp, id, ok := strings.Cut(s, "_")
	if !ok || id == "" {
		return "", time.Time{}, fmt.Errorf("malformed stem %q", s)
	}
	date, err := time.Parse(stampLayout, stamp)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed stamp in %q: %w", s, err)
	}
	return id, date, nil
}
