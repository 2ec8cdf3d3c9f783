// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/davetashner/labtrack/internal/evaluate"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/series"
	"github.com/davetashner/labtrack/internal/sparkline"
	"github.com/davetashner/labtrack/internal/store"
	"github.com/davetashner/labtrack/internal/trend"
)

// ErrUnknownParameter indicates a parameter that is neither configured nor
// recorded in any report.
var ErrUnknownParameter = errors.New("unknown parameter")

// TrendPoint is one dated value with its plotted projection.
type TrendPoint struct {
	Date     exam.Date         `json:"date"`
	ReportID string            `json:"report_id"`
	Value    float64           `json:"value"`
	Plot     *float64          `json:"plot"`
	Status   evaluate.Status   `json:"status"`
	Severity evaluate.Severity `json:"severity"`
}

// Stats summarizes a series.
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// TrendView is the chart of one parameter, oldest first.
type TrendView struct {
	Parameter string               `json:"parameter"`
	Unit      string               `json:"unit,omitempty"`
	Range     string               `json:"range"`
	Mode      trend.Mode           `json:"mode"`
	Points    []TrendPoint         `json:"points"`
	Change    trend.Change         `json:"change"`
	Stats     *Stats               `json:"stats,omitempty"`
	Sparkline []sparkline.Bar      `json:"sparkline"`
	Config    exam.ParameterConfig `json:"-"`
}

// Trend builds the chart of name in the given mode.
func Trend(b *store.Book, name string, mode trend.Mode, opts Options) (*TrendView, error) {
	opts = opts.withDefaults()
	cfg, known := b.Catalog.Lookup(name)
	if !known {
		cfg = exam.Unknown(exam.DisplayName(name))
	}
	asc := b.Series(name, series.Ascending)
	if !known && len(asc) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownParameter)
	}

	var plot []*float64
	if mode == trend.ModeMovingAverage {
		plot = make([]*float64, len(asc))
		for i, v := range trend.MovingAverage(asc, opts.Window) {
			plot[i] = &v
		}
	} else {
		plot = trend.Select(asc, mode)
	}

	v := &TrendView{
		Parameter: cfg.Name,
		Unit:      cfg.Unit,
		Range:     evaluate.FormatRange(cfg),
		Mode:      mode,
		Points:    make([]TrendPoint, len(asc)),
		Change:    trend.Delta(series.Reverse(asc)),
		Sparkline: sparkline.Project(asc, cfg),
		Config:    cfg,
	}
	for i, p := range asc {
		val := p.Value
		v.Points[i] = TrendPoint{
			Date:     p.Date,
			ReportID: p.ReportID,
			Value:    val,
			Plot:     plot[i],
			Status:   evaluate.Classify(cfg, &val),
			Severity: opts.Thresholds.Score(cfg, &val),
		}
	}
	if len(asc) > 0 {
		values := series.Values(asc)
		mean, std := stat.MeanStdDev(values, nil)
		if len(values) < 2 {
			std = 0
		}
		v.Stats = &Stats{
			Min:    floats.Min(values),
			Max:    floats.Max(values),
			Mean:   mean,
			StdDev: std,
		}
	}
	return v, nil
}
