// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package series extracts the dated values recorded for one parameter.
package series

import (
	"slices"

	"github.com/davetashner/labtrack/internal/exam"
)

// Order selects the chronological direction of an extracted series.
type Order int

const (
	// Ascending lists the oldest value first, for charts.
	Ascending Order = iota
	// Descending lists the most recent value first, for "latest" and deltas.
	Descending
)

// Point is one recorded value of a parameter.
type Point struct {
	Date     exam.Date `json:"date"`
	Value    float64   `json:"value"`
	ReportID string    `json:"report_id"`
}

// Extract returns the values recorded for name across reports. Each report
// contributes the first entry whose parameter matches; entries whose value
// does not parse are skipped.
//
// Reports on the same day keep their original relative order in Ascending
// output. Descending output is the exact reverse, so the later-inserted of
// two same-day reports counts as the more recent one.
func Extract(reports []exam.Report, name string, order Order) []Point {
	key := exam.Normalize(name)
	if key == "" {
		return nil
	}

	var points []Point
	for _, r := range reports {
		e, ok := r.Find(key)
		if !ok {
			continue
		}
		v, ok := e.Value.Float()
		if !ok {
			continue
		}
		points = append(points, Point{Date: r.Date, Value: v, ReportID: r.ID})
	}

	slices.SortStableFunc(points, func(a, b Point) int {
		return a.Date.Compare(b.Date)
	})
	if order == Descending {
		slices.Reverse(points)
	}
	return points
}

// Values returns the numeric values of points in order.
func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

// Latest returns the first n points of a descending series, reordered
// oldest first. It is the window used for sparklines.
func Latest(desc []Point, n int) []Point {
	if n > len(desc) {
		n = len(desc)
	}
	if n <= 0 {
		return nil
	}
	out := slices.Clone(desc[:n])
	slices.Reverse(out)
	return out
}

// Reverse returns a reversed copy of points.
func Reverse(points []Point) []Point {
	out := slices.Clone(points)
	slices.Reverse(out)
	return out
}
