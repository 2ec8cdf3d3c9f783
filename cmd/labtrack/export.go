package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/labtrack/internal/output"
	"github.com/davetashner/labtrack/internal/store"
	"github.com/davetashner/labtrack/internal/testable"
)

// Export/import flag values.
var (
	exportFormat string
	exportOutput string
)

// exportCmd writes the data in one of the registered formats.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export data as a JSON backup, CSV rows or anomaly share text",
	Long: `Export data.

Formats:
  json      full backup (catalog and reports); restore with 'labtrack import'
  csv       one row per measurement: date,location,notes,param,value,unit,min,max
  markdown  short list of out-of-range parameters, ready to share`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// importCmd restores a JSON backup or appends CSV rows.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a JSON backup or append reports from CSV",
	Long: `Import data.

A .csv file (as written by 'labtrack export --format csv') appends its
reports; parameters it carries a unit or range for are added when missing.
Any other file is read as a JSON backup and replaces all current data.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format: "+strings.Join(output.FormatNames(), ", "))
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (default: stdout)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	formatter, err := output.GetFormatter(exportFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "labtrack: %v", err)
	}
	b, s, err := openBook()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	ex := output.Export{Book: b, Options: s.Options, Now: time.Now()}
	if err := formatter.Format(ex, &buf); err != nil {
		return exitError(ExitFailure, "labtrack: export failed: %v", err)
	}

	if exportOutput == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := testable.ReplaceFile(cmdFS, exportOutput, buf.Bytes(), 0o600, 0o750); err != nil {
		return exitError(ExitFailure, "labtrack: cannot write %s: %v", exportOutput, err)
	}
	slog.Info("export written", "format", exportFormat, "path", exportOutput, "bytes", buf.Len())
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := cmdFS.ReadFile(path)
	if err != nil {
		return exitError(ExitFailure, "labtrack: %v", err)
	}

	b, s, err := openBook()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		imp, err := store.ParseCSV(bytes.NewReader(data))
		if err != nil {
			return exitError(ExitInvalidArgs, "labtrack: %s: %v", path, err)
		}
		res, err := b.MergeParameters(imp.Parameters, false)
		if err != nil {
			return classify(err)
		}
		n := b.AppendReports(imp.Reports)
		if err := saveBook(s, b); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Imported %d %s; %d new %s\n",
			n, plural(n, "report", "reports"), res.Added, plural(res.Added, "parameter", "parameters"))
		return nil
	}

	doc, err := store.ParseDocument(data)
	if err != nil {
		return classify(fmt.Errorf("%s: %w", path, err))
	}
	replaced := len(b.Reports)
	b.Replace(doc)
	if err := saveBook(s, b); err != nil {
		return err
	}
	slog.Info("backup restored", "path", path, "replaced_reports", replaced)
	_, _ = fmt.Fprintf(w, "Restored %d %s and %d %s\n",
		b.Catalog.Len(), plural(b.Catalog.Len(), "parameter", "parameters"),
		len(b.Reports), plural(len(b.Reports), "report", "reports"))
	return nil
}
