package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/report"
	"github.com/davetashner/labtrack/internal/store"
)

// Report command flag values.
var (
	reportDate        string
	reportLocation    string
	reportNotes       string
	reportExams       []string
	reportRemoveExams []string
	reportListFormat  string
)

// reportCmd is the parent command for report subcommands.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Add, edit, delete and list lab reports",
	Long: `Manage lab reports. A report is one visit: a date, a location, optional
notes and a list of measurements given as PARAM=VALUE.

Reports are addressed by id; any unique prefix of four or more characters
is accepted.`,
}

var reportAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a report",
	Long: `Add a report.

Values accept a decimal comma ("4,5"). Entries whose value is not a number
are dropped. Repeating a parameter keeps the last value.

Examples:
  labtrack report add --date 2024-03-01 --location "City Lab" \
      --exam GLUCOSIO=92 --exam "COLESTEROLO HDL=55"`,
	Args: cobra.NoArgs,
	RunE: runReportAdd,
}

var reportEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a report",
	Long: `Edit a report. Only the given flags change: --exam sets or replaces a
value, --remove-exam drops a parameter.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportEdit,
}

var reportDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a report",
	Args:    cobra.ExactArgs(1),
	RunE:    runReportDelete,
}

var reportListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List reports newest first",
	Args:    cobra.NoArgs,
	RunE:    runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one report with every entry evaluated",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

func init() {
	for _, c := range []*cobra.Command{reportAddCmd, reportEditCmd} {
		c.Flags().StringVar(&reportDate, "date", "", "report date, YYYY-MM-DD (add: default today)")
		c.Flags().StringVar(&reportLocation, "location", "", "where the sample was taken")
		c.Flags().StringVar(&reportNotes, "notes", "", "free-text notes")
		c.Flags().StringArrayVarP(&reportExams, "exam", "e", nil, "measurement as PARAM=VALUE (repeatable)")
	}
	reportEditCmd.Flags().StringArrayVar(&reportRemoveExams, "remove-exam", nil, "parameter to drop from the report (repeatable)")
	reportListCmd.Flags().StringVarP(&reportListFormat, "format", "f", "", "output format: text or json")

	reportCmd.AddCommand(reportAddCmd)
	reportCmd.AddCommand(reportEditCmd)
	reportCmd.AddCommand(reportDeleteCmd)
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
}

// today is overridden in tests.
var today = func() exam.Date { return exam.DateOf(time.Now()) }

// applyExams adds PARAM=VALUE pairs to entries.
func applyExams(entries exam.EntryList, pairs []string) (exam.EntryList, error) {
	for _, pair := range pairs {
		param, value, ok := strings.Cut(pair, "=")
		param = strings.TrimSpace(param)
		if !ok || param == "" {
			return nil, exitError(ExitInvalidArgs, "labtrack: invalid --exam %q (want PARAM=VALUE)", pair)
		}
		if _, ok := exam.ParseNumber(value); !ok {
			slog.Warn("dropping entry without a numeric value", "param", param, "value", value)
		}
		entries = entries.Set(param, exam.Value(strings.TrimSpace(value)))
	}
	return entries, nil
}

func runReportAdd(cmd *cobra.Command, _ []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}

	d := store.Draft{
		Date:     exam.Date(reportDate),
		Location: reportLocation,
		Notes:    reportNotes,
	}
	if d.Date == "" {
		d.Date = today()
	}
	if d.Entries, err = applyExams(nil, reportExams); err != nil {
		return err
	}

	r, err := b.AddReport(d)
	if err != nil {
		return classify(err)
	}
	if err := saveBook(s, b); err != nil {
		return err
	}
	slog.Info("report added", "id", r.ID, "date", r.Date, "entries", len(r.Exams))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added report %s (%s, %d %s)\n",
		report.ShortID(r.ID), r.Date, len(r.Exams), plural(len(r.Exams), "entry", "entries"))
	return nil
}

func runReportEdit(cmd *cobra.Command, args []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	existing, ok := b.Report(args[0])
	if !ok {
		return classify(fmt.Errorf("%q: %w", args[0], store.ErrReportNotFound))
	}

	d := store.Draft{
		Date:     existing.Date,
		Location: existing.Location,
		Notes:    existing.Notes,
		Entries:  append(exam.EntryList(nil), existing.Exams...),
	}
	flags := cmd.Flags()
	if flags.Changed("date") {
		d.Date = exam.Date(reportDate)
	}
	if flags.Changed("location") {
		d.Location = reportLocation
	}
	if flags.Changed("notes") {
		d.Notes = reportNotes
	}
	for _, name := range reportRemoveExams {
		for i := len(d.Entries) - 1; i >= 0; i-- {
			if exam.SameParameter(d.Entries[i].Param, name) {
				d.Entries = d.Entries.Remove(i)
			}
		}
	}
	if d.Entries, err = applyExams(d.Entries, reportExams); err != nil {
		return err
	}

	r, err := b.UpdateReport(existing.ID, d)
	if err != nil {
		return classify(err)
	}
	if err := saveBook(s, b); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated report %s (%s, %d %s)\n",
		report.ShortID(r.ID), r.Date, len(r.Exams), plural(len(r.Exams), "entry", "entries"))
	return nil
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	r, ok := b.Report(args[0])
	if !ok {
		return classify(fmt.Errorf("%q: %w", args[0], store.ErrReportNotFound))
	}
	if err := b.DeleteReport(r.ID); err != nil {
		return classify(err)
	}
	if err := saveBook(s, b); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %s (%s)\n", report.ShortID(r.ID), r.Date)
	return nil
}

func runReportList(cmd *cobra.Command, _ []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	format, err := outputFormat(reportListFormat, s)
	if err != nil {
		return err
	}

	reports := b.ReportsNewestFirst()
	w := cmd.OutOrStdout()
	if format == "json" {
		if reports == nil {
			reports = []exam.Report{}
		}
		return writeJSON(w, reports)
	}
	if len(reports) == 0 {
		_, _ = fmt.Fprintln(w, "No reports saved yet. Add one with 'labtrack report add'.")
		return nil
	}

	tbl := report.NewTable(
		report.Column{Header: "ID"},
		report.Column{Header: "Date"},
		report.Column{Header: "Location"},
		report.Column{Header: "Entries", Align: report.AlignRight},
		report.Column{Header: "Notes"},
	)
	for _, r := range reports {
		tbl.AddRow(report.ShortID(r.ID), string(r.Date), r.Location, fmt.Sprint(len(r.Exams)), oneLine(r.Notes))
	}
	return tbl.Render(w)
}

func runReportShow(cmd *cobra.Command, args []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	r, ok := b.Report(args[0])
	if !ok {
		return classify(fmt.Errorf("%q: %w", args[0], store.ErrReportNotFound))
	}
	for _, hr := range analysis.History(b, s.Options) {
		if hr.ID == r.ID {
			return report.RenderHistoryReport(cmd.OutOrStdout(), hr)
		}
	}
	return nil
}

// oneLine flattens notes for table display.
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const width = 40
	if r := []rune(s); len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
