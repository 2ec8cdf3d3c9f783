// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/sparkline"
)

func init() {
	Register(&metricsSection{})
}

// metricsSection prints one card row per leading catalog parameter.
type metricsSection struct {
	cards []analysis.Card
}

func (s *metricsSection) Name() string        { return "metrics" }
func (s *metricsSection) Description() string { return "Latest value, change and sparkline of key parameters" }

func (s *metricsSection) Analyze(in *Input) error {
	cards := in.Summary().Cards
	if len(cards) == 0 {
		return fmt.Errorf("metrics: catalog is empty: %w", ErrNoData)
	}
	s.cards = cards
	return nil
}

func (s *metricsSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Key Metrics"))
	_, _ = fmt.Fprintf(w, "-----------\n")

	tbl := NewTable(
		Column{Header: "Parameter"},
		Column{Header: "Latest", Align: AlignRight},
		Column{Header: "Range"},
		Column{Header: "Status"},
		Column{Header: "Change", Align: AlignRight, Color: ColorDelta},
		Column{Header: "Trend"},
	)
	for _, c := range s.cards {
		status := statusText(c.Status, c.Severity)
		spark := sparkline.Render(c.Sparkline, nil)
		styledSpark := sparkline.Render(c.Sparkline, func(g string, b sparkline.Bar) string {
			if b.OutOfRange {
				return colorRed.Sprint(g)
			}
			return g
		})
		tbl.AddCells(
			Cell{Text: c.Parameter},
			Cell{Text: FormatMeasure(c.Latest, c.Config)},
			Cell{Text: c.Range},
			Styled("● "+status, Dot(c.Tone)+" "+ColorTone(c.Tone, status)),
			Cell{Text: FormatChange(c.Change, c.Config)},
			Styled(spark, styledSpark),
		)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
