package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText prints the document as an aligned two-column table.
func WriteText(w io.Writer, doc Document) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", doc.Title); err != nil {
		return err
	}
	for _, line := range doc.summaryLines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range doc.Entries {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t\n", item.Label, FormatCurrency(item.Amount)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if doc.Disclaimer != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", doc.Disclaimer); err != nil {
			return err
		}
	}
	return nil
}
