package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/config"
)

func TestAnalysisOptions_Defaults(t *testing.T) {
	assert.Equal(t, analysis.DefaultOptions(), analysisOptions(&config.Config{}))
}

func TestAnalysisOptions_Overrides(t *testing.T) {
	opts := analysisOptions(&config.Config{
		Severity: config.SeverityConfig{Light: 0.05, Moderate: 0.5},
		Display:  config.DisplayConfig{Cards: 2, SparklinePoints: 9, MAWindow: 4},
	})
	assert.InDelta(t, 0.05, opts.Thresholds.Light, 1e-9)
	assert.InDelta(t, 0.5, opts.Thresholds.Moderate, 1e-9)
	assert.Equal(t, 2, opts.Cards)
	assert.Equal(t, 9, opts.SparklinePoints)
	assert.Equal(t, 4, opts.Window)
}

func TestLoadSettings_DataFilePrecedence(t *testing.T) {
	setupEnv(t)

	s, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "labtrack", "data.json"), s.DataFile)

	writeLocalConfig(t, "data_file: from-config.json\n")
	s, err = loadSettings()
	require.NoError(t, err)
	assert.Equal(t, "from-config.json", s.DataFile)

	dataPath = "from-flag.json"
	defer func() { dataPath = "" }()
	s, err = loadSettings()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.json", s.DataFile)
}

func TestLoadSettings_Invalid(t *testing.T) {
	setupEnv(t)
	writeLocalConfig(t, "display:\n  cards: -3\n")

	_, err := loadSettings()
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
}

func TestLoadSettings_Unparseable(t *testing.T) {
	setupEnv(t)
	writeLocalConfig(t, "display: [\n")

	_, err := loadSettings()
	assert.Equal(t, ExitFailure, exitCode(t, err))
}

func TestOutputFormat(t *testing.T) {
	s := &settings{Config: &config.Config{}}
	got, err := outputFormat("", s)
	require.NoError(t, err)
	assert.Equal(t, "text", got)

	s.Config.OutputFormat = "json"
	got, err = outputFormat("", s)
	require.NoError(t, err)
	assert.Equal(t, "json", got)

	got, err = outputFormat("TEXT", s)
	require.NoError(t, err)
	assert.Equal(t, "text", got)

	_, err = outputFormat("yaml", s)
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"overview", "anomalies"}, splitList(" overview, ,anomalies"))
	assert.Nil(t, splitList(""))
}
