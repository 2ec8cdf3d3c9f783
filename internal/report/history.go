// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/labtrack/internal/analysis"
)

func init() {
	Register(&historySection{})
}

// historySection prints every report, newest first, with its entries.
type historySection struct {
	reports []analysis.HistoryReport
}

func (s *historySection) Name() string        { return "history" }
func (s *historySection) Description() string { return "All reports, newest first, with per-entry evaluation" }

func (s *historySection) Analyze(in *Input) error {
	h := analysis.History(in.Book, in.Options)
	if len(h) == 0 {
		return fmt.Errorf("history: no reports saved: %w", ErrNoData)
	}
	s.reports = h
	return nil
}

func (s *historySection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("History"))
	_, _ = fmt.Fprintf(w, "-------\n")
	for _, r := range s.reports {
		if err := RenderHistoryReport(w, r); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistoryReport writes one report block.
func RenderHistoryReport(w io.Writer, r analysis.HistoryReport) error {
	location := r.Location
	if location == "" {
		location = "-"
	}
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", colorBold.Sprint(string(r.Date)), location, colorFaint.Sprint(ShortID(r.ID)))
	if r.Notes != "" {
		_, _ = fmt.Fprintf(w, "  Notes: %s\n", r.Notes)
	}
	if len(r.Entries) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n\n", colorFaint.Sprint("No parameters in this report."))
		return nil
	}

	tbl := NewTable(
		Column{Header: "Parameter"},
		Column{Header: "Value", Align: AlignRight},
		Column{Header: "Range"},
		Column{Header: "Status"},
		Column{Header: "Change", Align: AlignRight, Color: ColorDelta},
	)
	for _, e := range r.Entries {
		status := "OK"
		if e.Status.OutOfRange() {
			status = statusText(e.Status, e.Severity)
		} else if e.Value == nil {
			status = string(e.Status)
		}
		tbl.AddCells(
			Cell{Text: e.Parameter},
			Cell{Text: FormatMeasure(e.Value, e.Config)},
			Cell{Text: e.Range},
			Styled("● "+status, Dot(e.Tone)+" "+ColorTone(e.Tone, status)),
			Cell{Text: FormatChange(e.Change, e.Config)},
		)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

// ShortID abbreviates a report id for display; any unique prefix of four
// or more characters is accepted back by the CLI.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
