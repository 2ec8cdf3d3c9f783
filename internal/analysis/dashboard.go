// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package analysis assembles the dashboard, history and trend views from a
// Book. The views are plain data shared by the terminal report, the
// exporters and the MCP tools.
package analysis

import (
	"cmp"
	"slices"

	"github.com/davetashner/labtrack/internal/evaluate"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/series"
	"github.com/davetashner/labtrack/internal/sparkline"
	"github.com/davetashner/labtrack/internal/store"
	"github.com/davetashner/labtrack/internal/trend"
)

// DefaultCards is the number of metric cards on the dashboard.
const DefaultCards = 6

// Options tune the views.
type Options struct {
	Thresholds      evaluate.Thresholds
	Cards           int
	SparklinePoints int
	Window          int
}

// DefaultOptions returns the standard dashboard settings.
func DefaultOptions() Options {
	return Options{
		Thresholds:      evaluate.DefaultThresholds(),
		Cards:           DefaultCards,
		SparklinePoints: sparkline.DefaultPoints,
		Window:          trend.DefaultWindow,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Thresholds.Validate() != nil {
		o.Thresholds = d.Thresholds
	}
	if o.Cards <= 0 {
		o.Cards = d.Cards
	}
	if o.SparklinePoints <= 0 {
		o.SparklinePoints = d.SparklinePoints
	}
	if o.Window <= 0 {
		o.Window = d.Window
	}
	return o
}

// Card is the latest state of one parameter.
type Card struct {
	Parameter string               `json:"parameter"`
	Unit      string               `json:"unit,omitempty"`
	Range     string               `json:"range"`
	Category  string               `json:"category"`
	Color     string               `json:"color"`
	Latest    *float64             `json:"latest"`
	Date      exam.Date            `json:"date,omitempty"`
	Points    int                  `json:"points"`
	Status    evaluate.Status      `json:"status"`
	Severity  evaluate.Severity    `json:"severity"`
	Tone      evaluate.Tone        `json:"tone"`
	Change    trend.Change         `json:"change"`
	Sparkline []sparkline.Bar      `json:"sparkline"`
	Config    exam.ParameterConfig `json:"-"`
}

// Anomaly is a parameter whose latest value is out of range.
type Anomaly struct {
	Parameter string               `json:"parameter"`
	Unit      string               `json:"unit,omitempty"`
	Range     string               `json:"range"`
	Value     float64              `json:"value"`
	Date      exam.Date            `json:"date"`
	Status    evaluate.Status      `json:"status"`
	Severity  evaluate.Severity    `json:"severity"`
	Tone      evaluate.Tone        `json:"tone"`
	Change    trend.Change         `json:"change"`
	Config    exam.ParameterConfig `json:"-"`
}

// Summary is the dashboard: overall state, metric cards and anomalies.
type Summary struct {
	Overall      evaluate.Tone `json:"overall"`
	OverallLabel string        `json:"overall_label"`
	Parameters   int           `json:"parameters"`
	Reports      int           `json:"reports"`
	LastReport   exam.Date     `json:"last_report,omitempty"`
	Cards        []Card        `json:"cards"`
	Anomalies    []Anomaly     `json:"anomalies"`
}

// Dashboard evaluates the latest value of every catalog parameter. Cards
// cover the first opts.Cards parameters in catalog order; anomalies cover
// all of them, most severe first.
func Dashboard(b *store.Book, opts Options) *Summary {
	opts = opts.withDefaults()
	th := opts.Thresholds

	s := &Summary{
		Parameters: b.Catalog.Len(),
		Reports:    len(b.Reports),
		Cards:      []Card{},
		Anomalies:  []Anomaly{},
	}
	if newest := b.ReportsNewestFirst(); len(newest) > 0 {
		s.LastReport = newest[0].Date
	}

	for i, cfg := range b.Catalog.All() {
		desc := b.Series(cfg.Name, series.Descending)

		var latest *float64
		var date exam.Date
		if len(desc) > 0 {
			v := desc[0].Value
			latest, date = &v, desc[0].Date
		}
		st := evaluate.Classify(cfg, latest)
		sev := th.Score(cfg, latest)
		change := trend.Delta(desc)

		if st.OutOfRange() {
			s.Anomalies = append(s.Anomalies, Anomaly{
				Parameter: cfg.Name,
				Unit:      cfg.Unit,
				Range:     evaluate.FormatRange(cfg),
				Value:     *latest,
				Date:      date,
				Status:    st,
				Severity:  sev,
				Tone:      th.ToneOf(cfg, latest),
				Change:    change,
				Config:    cfg,
			})
		}

		if i < opts.Cards {
			s.Cards = append(s.Cards, Card{
				Parameter: cfg.Name,
				Unit:      cfg.Unit,
				Range:     evaluate.FormatRange(cfg),
				Category:  cfg.Category,
				Color:     cfg.Color,
				Latest:    latest,
				Date:      date,
				Points:    len(desc),
				Status:    st,
				Severity:  sev,
				Tone:      th.ToneOf(cfg, latest),
				Change:    change,
				Sparkline: sparkline.Project(series.Latest(desc, opts.SparklinePoints), cfg),
				Config:    cfg,
			})
		}
	}

	slices.SortStableFunc(s.Anomalies, func(a, b Anomaly) int {
		return cmp.Compare(b.Severity.Ratio, a.Severity.Ratio)
	})
	s.Overall = evaluate.Overall(len(s.Anomalies))
	s.OverallLabel = evaluate.OverallLabel(s.Overall)
	return s
}
