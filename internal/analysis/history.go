// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"github.com/davetashner/labtrack/internal/evaluate"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/series"
	"github.com/davetashner/labtrack/internal/store"
	"github.com/davetashner/labtrack/internal/trend"
)

// HistoryEntry is one evaluated entry of a report.
type HistoryEntry struct {
	Parameter string               `json:"parameter"`
	Unit      string               `json:"unit,omitempty"`
	Range     string               `json:"range"`
	Value     *float64             `json:"value"`
	Status    evaluate.Status      `json:"status"`
	Severity  evaluate.Severity    `json:"severity"`
	Tone      evaluate.Tone        `json:"tone"`
	Change    trend.Change         `json:"change"`
	Config    exam.ParameterConfig `json:"-"`
}

// HistoryReport is a report with its entries evaluated.
type HistoryReport struct {
	ID       string         `json:"id"`
	Date     exam.Date      `json:"date"`
	Location string         `json:"location"`
	Notes    string         `json:"notes,omitempty"`
	Entries  []HistoryEntry `json:"entries"`
}

// History evaluates every report, newest first. Each entry's change is
// measured against the previous recorded value of the same parameter.
func History(b *store.Book, opts Options) []HistoryReport {
	opts = opts.withDefaults()
	th := opts.Thresholds

	cache := make(map[string][]series.Point)
	descFor := func(name string) []series.Point {
		key := exam.Normalize(name)
		if pts, ok := cache[key]; ok {
			return pts
		}
		pts := b.Series(name, series.Descending)
		cache[key] = pts
		return pts
	}

	reports := b.ReportsNewestFirst()
	out := make([]HistoryReport, 0, len(reports))
	for _, r := range reports {
		hr := HistoryReport{
			ID:       r.ID,
			Date:     r.Date,
			Location: r.Location,
			Notes:    r.Notes,
			Entries:  make([]HistoryEntry, 0, len(r.Exams)),
		}
		for _, e := range r.Exams {
			cfg := b.Config(e.Param)
			v := e.Value.Ptr()
			he := HistoryEntry{
				Parameter: cfg.Name,
				Unit:      cfg.Unit,
				Range:     evaluate.FormatRange(cfg),
				Value:     v,
				Status:    evaluate.ClassifyValue(cfg, e.Value),
				Severity:  th.Score(cfg, v),
				Tone:      th.ToneOf(cfg, v),
				Config:    cfg,
			}
			if v != nil {
				he.Change = trend.DeltaFor(descFor(e.Param), r.ID)
			}
			hr.Entries = append(hr.Entries, he)
		}
		out = append(out, hr)
	}
	return out
}
