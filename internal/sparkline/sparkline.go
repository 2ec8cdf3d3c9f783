// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package sparkline projects a short value series onto bar heights for
// compact charts.
package sparkline

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/davetashner/labtrack/internal/evaluate"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/series"
)

// Bar heights span MinMagnitude..MaxMagnitude.
const (
	MinMagnitude = 6
	MaxMagnitude = MinMagnitude + scale
	scale        = 18
)

// DefaultPoints is how many of the latest values a card sparkline shows.
const DefaultPoints = 5

// Bar is one column of a sparkline.
type Bar struct {
	Magnitude  int     `json:"magnitude"`
	Value      float64 `json:"value"`
	OutOfRange bool    `json:"out_of_range"`
}

// Project scales an ascending series against its own extremes. A flat
// series draws every bar at the minimum height. OutOfRange marks values
// outside cfg's reference range.
func Project(asc []series.Point, cfg exam.ParameterConfig) []Bar {
	if len(asc) == 0 {
		return nil
	}
	values := series.Values(asc)
	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	bars := make([]Bar, len(values))
	for i, v := range values {
		bars[i] = Bar{
			Magnitude:  MinMagnitude + int(math.Round((v-lo)/span*scale)),
			Value:      v,
			OutOfRange: evaluate.Classify(cfg, &v).OutOfRange(),
		}
	}
	return bars
}

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Placeholder is drawn when there is nothing to plot.
const Placeholder = "·····"

// Render draws bars with Unicode block glyphs. The mark callback, when set,
// decorates each glyph, e.g. to color out-of-range bars.
func Render(bars []Bar, mark func(glyph string, b Bar) string) string {
	if len(bars) == 0 {
		return Placeholder
	}
	var sb strings.Builder
	for _, b := range bars {
		idx := int(math.Round(float64(b.Magnitude-MinMagnitude) / scale * float64(len(blocks)-1)))
		idx = min(max(idx, 0), len(blocks)-1)
		glyph := string(blocks[idx])
		if mark != nil {
			glyph = mark(glyph, b)
		}
		sb.WriteString(glyph)
	}
	return sb.String()
}
