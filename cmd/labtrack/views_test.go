package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/report"
)

func TestDashboard_Text(t *testing.T) {
	path := setupEnv(t)
	seedBook(t, path)

	out, err := run(t, path, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall State")
	assert.Contains(t, out, "Key Metrics")

	anomalies := out[strings.Index(out, "Out of Range"):]
	assert.Less(t, strings.Index(anomalies, "COLESTEROLO"), strings.Index(anomalies, "GLUCOSIO"), "most severe first")
}

func TestDashboard_JSON(t *testing.T) {
	path := setupEnv(t)
	seedBook(t, path)

	out, err := run(t, path, "dashboard", "--format", "json", "--sections", "anomalies")
	require.NoError(t, err)

	var rj report.ReportJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rj))
	require.NotNil(t, rj.Summary)
	assert.Equal(t, 2, rj.Summary.Reports)
	require.Len(t, rj.Summary.Anomalies, 2)
	assert.Equal(t, "COLESTEROLO", rj.Summary.Anomalies[0].Parameter)
	require.Len(t, rj.Sections, 1)
	assert.Equal(t, "anomalies", rj.Sections[0].Name)
}

func TestDashboard_FormatFromConfig(t *testing.T) {
	path := setupEnv(t)
	writeLocalConfig(t, "output_format: json\n")

	out, err := run(t, path, "dashboard")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)
}

func TestDashboard_Errors(t *testing.T) {
	path := setupEnv(t)

	_, err := run(t, path, "dashboard", "--sections", "overview,nope")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))

	_, err = run(t, path, "dashboard", "--format", "xml")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
}

func TestHistory(t *testing.T) {
	path := setupEnv(t)

	out, err := run(t, path, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No reports saved yet")

	seedBook(t, path)
	out, err = run(t, path, "history")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "2024-02-01"), strings.Index(out, "2024-01-01"), "newest first")
	assert.Contains(t, out, "HIGH Severe")

	out, err = run(t, path, "history", "--limit", "1", "--format", "json")
	require.NoError(t, err)
	var reports []analysis.HistoryReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "b2c3d4e5-0002", reports[0].ID)
	require.NotNil(t, reports[0].Entries[0].Change.Delta)
	assert.InDelta(t, 5, *reports[0].Entries[0].Change.Delta, 1e-9)
}

func TestTrend(t *testing.T) {
	path := setupEnv(t)
	seedBook(t, path)

	out, err := run(t, path, "trend", "glucosio")
	require.NoError(t, err)
	assert.Contains(t, out, "Trend: GLUCOSIO (mg/dL)")
	assert.Contains(t, out, "Range: 70 - 100 mg/dL")
	assert.Contains(t, out, "2024-01-01")

	out, err = run(t, path, "trend", "GLUCOSIO", "--mode", "ma", "--format", "json")
	require.NoError(t, err)
	var v analysis.TrendView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Len(t, v.Points, 2)
	require.NotNil(t, v.Points[1].Plot)
	assert.InDelta(t, 62.5, *v.Points[1].Plot, 1e-9)
	require.NotNil(t, v.Stats)
	assert.InDelta(t, 60, v.Stats.Min, 1e-9)
}

func TestTrend_Errors(t *testing.T) {
	path := setupEnv(t)
	seedBook(t, path)

	_, err := run(t, path, "trend", "FERRITINA")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))

	_, err = run(t, path, "trend", "GLUCOSIO", "--mode", "median")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
}
