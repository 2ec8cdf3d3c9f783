package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/report"
)

// History flag values.
var (
	historyFormat string
	historyLimit  int
)

// historyCmd lists reports with every entry evaluated.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List reports newest first with status, severity and change",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "", "output format: text or json")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the newest N reports (0 = all)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	format, err := outputFormat(historyFormat, s)
	if err != nil {
		return err
	}
	if historyLimit < 0 {
		return exitError(ExitInvalidArgs, "labtrack: --limit must not be negative")
	}

	reports := analysis.History(b, s.Options)
	if historyLimit > 0 && len(reports) > historyLimit {
		reports = reports[:historyLimit]
	}

	w := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(w, reports)
	}
	if len(reports) == 0 {
		_, _ = fmt.Fprintln(w, "No reports saved yet. Add one with 'labtrack report add'.")
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s\n\n", report.SectionTitle("History"))
	for _, r := range reports {
		if err := report.RenderHistoryReport(w, r); err != nil {
			return err
		}
	}
	return nil
}
