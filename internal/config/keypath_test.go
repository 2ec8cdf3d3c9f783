package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValue(t *testing.T) {
	cfg := &Config{OutputFormat: "json", Display: DisplayConfig{Cards: 4}}

	v, err := GetValue(cfg, "output_format")
	require.NoError(t, err)
	assert.Equal(t, "json", v)

	v, err = GetValue(cfg, "display.cards")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = GetValue(cfg, "display")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"cards": 4}, v)

	_, err = GetValue(cfg, "display.ma_window")
	assert.ErrorIs(t, err, ErrNotSet)

	_, err = GetValue(cfg, "severity.light")
	assert.ErrorIs(t, err, ErrNotSet)

	_, err = GetValue(cfg, "display.width")
	assert.ErrorContains(t, err, "unknown key")
}

func TestSetValue(t *testing.T) {
	data := map[string]any{}
	require.NoError(t, SetValue(data, "severity.light", "0.05"))
	require.NoError(t, SetValue(data, "display.cards", "8"))
	require.NoError(t, SetValue(data, "output_format", "json"))

	assert.Equal(t, map[string]any{
		"severity":      map[string]any{"light": 0.05},
		"display":       map[string]any{"cards": 8},
		"output_format": "json",
	}, data)
}

func TestSetValue_ScalarParent(t *testing.T) {
	data := map[string]any{"display": "flat"}
	assert.ErrorContains(t, SetValue(data, "display.cards", "3"), "not a map")
}

func TestFlattenMap(t *testing.T) {
	got := FlattenMap(map[string]any{
		"data_file": "x.json",
		"display":   map[string]any{"cards": 3, "ma_window": 4},
	}, "")
	assert.Equal(t, map[string]any{
		"data_file":         "x.json",
		"display.cards":     3,
		"display.ma_window": 4,
	}, got)
}

func TestValidateKeyPath(t *testing.T) {
	valid := []string{
		"data_file", "output_format", "log_format",
		"severity.light", "severity.moderate",
		"display.cards", "display.sparkline_points", "display.ma_window",
	}
	for _, k := range valid {
		assert.NoError(t, ValidateKeyPath(k), k)
	}

	tests := map[string]string{
		"":                   "empty",
		"colour":             "unknown key",
		"display.width":      "unknown key",
		"data_file.path":     "scalar",
		"severity":           "section",
		"display.cards.more": "scalar",
	}
	for k, want := range tests {
		assert.ErrorContains(t, ValidateKeyPath(k), want, k)
	}
}

func TestSetValue_ParsesByFieldType(t *testing.T) {
	data := map[string]any{}
	require.NoError(t, SetValue(data, "severity.moderate", "1"))
	require.NoError(t, SetValue(data, "data_file", "2024"))
	assert.Equal(t, 1.0, data["severity"].(map[string]any)["moderate"])
	assert.Equal(t, "2024", data["data_file"])

	assert.ErrorContains(t, SetValue(data, "display.cards", "many"), "want an integer")
	assert.ErrorContains(t, SetValue(data, "severity.light", "low"), "want a number")
	assert.ErrorContains(t, SetValue(data, "display", "3"), "section")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{
		"data_file",
		"display.cards", "display.ma_window", "display.sparkline_points",
		"log_format", "output_format",
		"severity.light", "severity.moderate",
	}, Keys())
}
