package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/internal/export"
	"github.com/mesh-intelligence/gmex/pkg/types"
)

var (
	exportFormat string
	exportOutput string
	exportSince  string
	exportLimit  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived messages as CSV, HTML, or plain text",
	Long: `Export renders the archive, newest messages first, in one of three
formats: csv for spreadsheets, html for a browsable report, or txt for
plain-text reading. Output goes to stdout unless --output names a file.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format (csv, html, txt)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only messages on or after this date (YYYY-MM-DD)")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum messages to export (0 means all)")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	opts := types.ListOptions{
		Limit:       exportLimit,
		NewestFirst: true,
	}
	if exportSince != "" {
		since, err := time.Parse("2006-01-02", exportSince)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
		opts.Since = since
	}

	items, err := export.Collect(store, opts)
	if err != nil {
		return fmt.Errorf("collect messages: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOutput != "" && exportOutput != "-" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch exportFormat {
	case "csv":
		err = export.WriteCSV(out, items)
	case "html":
		err = export.WriteHTML(out, items)
	case "txt":
		err = export.WriteText(out, items)
	default:
		return fmt.Errorf("unknown format %q (want csv, html, or txt)", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("write %s export: %w", exportFormat, err)
	}

	if exportOutput != "" && exportOutput != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d message(s) to %s\n", len(items), exportOutput)
	}
	return nil
}
