// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package trend derives change and smoothing series from a parameter's
// recorded values.
package trend

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/davetashner/labtrack/internal/series"
)

// DefaultWindow is the moving-average window used by ModeMovingAverage.
const DefaultWindow = 3

// Change is the difference between the most recent value and the one
// before it. Percent is relative to the previous value's magnitude. Delta
// is nil with fewer than two points; Percent is also nil when the previous
// value is zero.
type Change struct {
	Current  float64  `json:"current"`
	Previous *float64 `json:"previous,omitempty"`
	Delta    *float64 `json:"delta"`
	Percent  *float64 `json:"percent"`
}

// Delta compares the first two points of a descending series.
func Delta(desc []series.Point) Change {
	if len(desc) == 0 {
		return Change{}
	}
	if len(desc) < 2 {
		return Change{Current: desc[0].Value}
	}
	return between(desc[0].Value, desc[1].Value)
}

// DeltaFor compares the value recorded by reportID with the point that
// precedes it in a descending series. Missing reports and the oldest point
// have no delta.
func DeltaFor(desc []series.Point, reportID string) Change {
	for i, p := range desc {
		if p.ReportID != reportID {
			continue
		}
		if i+1 >= len(desc) {
			return Change{Current: p.Value}
		}
		return between(p.Value, desc[i+1].Value)
	}
	return Change{}
}

func between(current, previous float64) Change {
	d := current - previous
	c := Change{Current: current, Previous: &previous, Delta: &d}
	if previous != 0 {
		pct := d / math.Abs(previous) * 100
		c.Percent = &pct
	}
	return c
}

// DeltaSeries returns the step differences of an ascending series. The
// first element is always nil.
func DeltaSeries(asc []series.Point) []*float64 {
	out := make([]*float64, len(asc))
	for i := 1; i < len(asc); i++ {
		d := asc[i].Value - asc[i-1].Value
		out[i] = &d
	}
	return out
}

// MovingAverage returns the trailing mean over window points at each
// position of an ascending series. The window shrinks at the start of the
// series; a window below 1 is treated as 1.
func MovingAverage(asc []series.Point, window int) []float64 {
	if window < 1 {
		window = 1
	}
	values := series.Values(asc)
	out := make([]float64, len(values))
	for i := range values {
		lo := max(0, i-window+1)
		out[i] = stat.Mean(values[lo:i+1], nil)
	}
	return out
}

// Mode selects which derived series a chart plots.
type Mode string

const (
	ModeValues        Mode = "values"
	ModeDelta         Mode = "delta"
	ModeMovingAverage Mode = "ma"
)

// Modes lists the accepted chart modes.
var Modes = []Mode{ModeValues, ModeDelta, ModeMovingAverage}

// ParseMode parses a chart mode name. An empty string selects values and
// "ma3" is accepted for the moving average.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "values", "value":
		return ModeValues, nil
	case "delta":
		return ModeDelta, nil
	case "ma", "ma3":
		return ModeMovingAverage, nil
	}
	return "", fmt.Errorf("unknown trend mode %q (valid: values, delta, ma)", s)
}

// Select projects an ascending series according to mode. The result has
// one element per point; nil marks a position with nothing to plot.
func Select(asc []series.Point, mode Mode) []*float64 {
	switch mode {
	case ModeDelta:
		return DeltaSeries(asc)
	case ModeMovingAverage:
		return pointers(MovingAverage(asc, DefaultWindow))
	default:
		return pointers(series.Values(asc))
	}
}

func pointers(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
