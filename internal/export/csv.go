package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// csvHeader matches the column layout consumers of earlier exports
// already parse; keep the order stable.
var csvHeader = []string{"Date", "Message ID", "Thread ID", "From", "To", "Subject"}

// WriteCSV writes the metadata columns for each item.
func WriteCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, it := range items {
		row := []string{it.Date, it.ID, it.ThreadID, it.From, it.To, it.Subject}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", it.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
