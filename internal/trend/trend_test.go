// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/series"
)

func points(values ...float64) []series.Point {
	out := make([]series.Point, len(values))
	for i, v := range values {
		out[i] = series.Point{Date: exam.Date("2024-01-01"), Value: v, ReportID: string(rune('a' + i))}
	}
	return out
}

func deref(ps []*float64) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		if p == nil {
			out[i] = nil
			continue
		}
		out[i] = *p
	}
	return out
}

func TestDelta_GlucoseScenario(t *testing.T) {
	desc := points(15, 10)
	c := Delta(desc)
	require.NotNil(t, c.Delta)
	require.NotNil(t, c.Percent)
	assert.InDelta(t, 5.0, *c.Delta, 1e-9)
	assert.InDelta(t, 50.0, *c.Percent, 1e-9)
	assert.Equal(t, 15.0, c.Current)
	assert.Equal(t, 10.0, *c.Previous)
}

func TestDelta_TooFewPoints(t *testing.T) {
	assert.Nil(t, Delta(nil).Delta)
	c := Delta(points(42))
	assert.Nil(t, c.Delta)
	assert.Nil(t, c.Percent)
	assert.Equal(t, 42.0, c.Current)
}

func TestDelta_ZeroPrevious(t *testing.T) {
	c := Delta(points(3, 0))
	require.NotNil(t, c.Delta)
	assert.InDelta(t, 3.0, *c.Delta, 1e-9)
	assert.Nil(t, c.Percent)
}

func TestDeltaFor(t *testing.T) {
	desc := points(30, 20, 5)

	c := DeltaFor(desc, "b")
	require.NotNil(t, c.Delta)
	assert.InDelta(t, 15.0, *c.Delta, 1e-9)
	assert.InDelta(t, 300.0, *c.Percent, 1e-9)

	assert.Nil(t, DeltaFor(desc, "c").Delta, "oldest point has no predecessor")
	assert.Nil(t, DeltaFor(desc, "missing").Delta)
}

func TestDeltaSeries(t *testing.T) {
	assert.Equal(t, []any{nil, 3.0, -5.0}, deref(DeltaSeries(points(5, 8, 3))))
	assert.Empty(t, DeltaSeries(nil))
	assert.Equal(t, []any{nil}, deref(DeltaSeries(points(1))))
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage(points(10, 20, 30, 40), 3)
	assert.InDeltaSlice(t, []float64{10, 15, 20, 30}, got, 1e-9)
}

func TestMovingAverage_WindowClamped(t *testing.T) {
	in := points(1, 2, 3)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, MovingAverage(in, 0), 1e-9)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, MovingAverage(in, -4), 1e-9)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2}, MovingAverage(in, 10), 1e-9)
	assert.Empty(t, MovingAverage(nil, 3))
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"":       ModeValues,
		"values": ModeValues,
		"DELTA":  ModeDelta,
		"ma":     ModeMovingAverage,
		"ma3":    ModeMovingAverage,
	}
	for in, want := range tests {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("median")
	assert.ErrorContains(t, err, "unknown trend mode")
}

func TestSelect(t *testing.T) {
	asc := points(10, 20, 30, 40)
	assert.Equal(t, []any{10.0, 20.0, 30.0, 40.0}, deref(Select(asc, ModeValues)))
	assert.Equal(t, []any{nil, 10.0, 10.0, 10.0}, deref(Select(asc, ModeDelta)))
	assert.Equal(t, []any{10.0, 15.0, 20.0, 30.0}, deref(Select(asc, ModeMovingAverage)))
	assert.Len(t, asc, 4, "projection does not alter its input")
}

func TestDelta_NegativePreviousUsesMagnitude(t *testing.T) {
	c := Delta(points(-2, -4))
	require.NotNil(t, c.Percent)
	assert.InDelta(t, 50.0, *c.Percent, 1e-9)
}
