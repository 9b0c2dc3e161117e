package export

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders the plain-text export with rule separators.
func WriteText(w io.Writer, items []Item) error {
	var b strings.Builder
	fmt.Fprintf(&b, "EMAIL EXPORT (%d messages)\n", len(items))
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	for i, it := range items {
		subject := it.Subject
		if subject == "" {
			subject = "(No Subject)"
		}
		fmt.Fprintf(&b, "[%d] %s\n", i+1, subject)
		b.WriteString(strings.Repeat("-", 80) + "\n")
		fmt.Fprintf(&b, "From: %s\n", it.From)
		fmt.Fprintf(&b, "To: %s\n", it.To)
		fmt.Fprintf(&b, "Date: %s\n\n", it.Date)
		b.WriteString(it.BodyText + "\n\n")
		b.WriteString(strings.Repeat("=", 80) + "\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text export: %w", err)
	}
	return nil
}
