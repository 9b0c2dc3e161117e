// Package export renders archived emails to CSV, HTML and plain text.
// Exporters consume the store through its interface only; they never
// touch the archive directory themselves.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

// Item is one renderable email assembled from store fields.
type Item struct {
	ID       string
	ThreadID string
	Date     string
	From     string
	To       string
	Subject  string
	BodyText string
}

// Collect lists the archive with the given options and materializes an
// Item per record. Records that vanish between List and Get are
// skipped; a bulk export should not fail because one record was
// concurrently replaced.
func Collect(store types.Store, opts types.ListOptions) ([]Item, error) {
	entries, err := store.List(opts)
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		fields, err := store.Get(e.ID, true)
		if errors.Is(err, types.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", e.ID, err)
		}
		items = append(items, Item{
			ID:       fieldString(fields, "id"),
			ThreadID: fieldString(fields, "thread-id"),
			Date:     fieldString(fields, "date"),
			From:     fieldString(fields, "from"),
			To:       fieldString(fields, "to"),
			Subject:  fieldString(fields, "subject"),
			BodyText: fieldString(fields, "body_text"),
		})
	}
	return items, nil
}

// fieldString flattens a field value: repeated headers join with a
// comma, anything non-string renders empty.
func fieldString(f types.Fields, key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	default:
		return ""
	}
}
