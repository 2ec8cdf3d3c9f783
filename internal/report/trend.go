// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/evaluate"
	"github.com/davetashner/labtrack/internal/sparkline"
	"github.com/davetashner/labtrack/internal/trend"
)

// modeTitle labels the plotted column.
func modeTitle(m trend.Mode, window int) string {
	switch m {
	case trend.ModeDelta:
		return "Change"
	case trend.ModeMovingAverage:
		return fmt.Sprintf("Moving avg (%d)", window)
	}
	return "Value"
}

// RenderTrend writes a parameter's dated series, the plotted projection
// for the chosen mode and a sparkline of the raw values.
func RenderTrend(w io.Writer, v *analysis.TrendView, window int) error {
	title := v.Parameter
	if v.Unit != "" {
		title += " (" + v.Unit + ")"
	}
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Trend: "+title))
	_, _ = fmt.Fprintf(w, "  Range: %s\n", v.Range)

	if len(v.Points) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", colorFaint.Sprint("No values recorded."))
		return nil
	}

	d := v.Config.Precision()
	tbl := NewTable(
		Column{Header: "Date"},
		Column{Header: "Value", Align: AlignRight},
		Column{Header: modeTitle(v.Mode, window), Align: AlignRight},
		Column{Header: "Status", Color: ColorStatus},
		Column{Header: "Severity", Color: ColorSeverity},
	)
	for _, p := range v.Points {
		val := p.Value
		plot := evaluate.FormatValue(p.Plot, d)
		if v.Mode == trend.ModeDelta {
			plot = evaluate.FormatSigned(p.Plot, d)
		}
		sev := ""
		if p.Status.OutOfRange() {
			sev = p.Severity.Label
		}
		tbl.AddRow(string(p.Date), evaluate.FormatValue(&val, d), plot, string(p.Status), sev)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}

	spark := sparkline.Render(v.Sparkline, func(g string, b sparkline.Bar) string {
		if b.OutOfRange {
			return colorRed.Sprint(g)
		}
		return g
	})
	_, _ = fmt.Fprintf(w, "\n  %s  latest change %s\n", spark, FormatChange(v.Change, v.Config))
	if s := v.Stats; s != nil {
		_, _ = fmt.Fprintf(w, "  min %s  max %s  mean %s  sd %s\n",
			evaluate.FormatValue(&s.Min, d),
			evaluate.FormatValue(&s.Max, d),
			evaluate.FormatValue(&s.Mean, d+1),
			evaluate.FormatValue(&s.StdDev, d+1))
	}
	return nil
}
