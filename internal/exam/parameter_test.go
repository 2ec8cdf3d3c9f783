// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package exam

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_FillsMissingFields(t *testing.T) {
	got := Migrate(ParameterConfig{Name: "GLUCOSIO"})

	require.NotNil(t, got.Decimals)
	assert.Equal(t, 1, *got.Decimals)
	assert.Equal(t, DirectionRange, got.Direction)
	assert.Equal(t, "Other", got.Category)
	assert.Equal(t, DefaultColor, got.Color)
}

func TestMigrate_KeepsPresentFields(t *testing.T) {
	in := ParameterConfig{
		Name:      "LDL",
		Decimals:  Int(0),
		Direction: LowerBetter,
		Category:  "Lipids",
		Color:     "orange",
		Extra:     map[string]json.RawMessage{"source": json.RawMessage(`"lab"`)},
	}
	got := Migrate(in)

	assert.Equal(t, 0, *got.Decimals)
	assert.Equal(t, LowerBetter, got.Direction)
	assert.Equal(t, "Lipids", got.Category)
	assert.Equal(t, "orange", got.Color)
	assert.Equal(t, in.Extra, got.Extra)
}

func TestMigrate_ClampsDecimals(t *testing.T) {
	assert.Equal(t, 6, *Migrate(ParameterConfig{Decimals: Int(9)}).Decimals)
	assert.Equal(t, 0, *Migrate(ParameterConfig{Decimals: Int(-2)}).Decimals)
}

func TestUnknown(t *testing.T) {
	u := Unknown("FERRITINA")
	assert.Equal(t, "FERRITINA", u.Name)
	assert.Empty(t, u.Unit)
	assert.False(t, u.HasRange())
	assert.Equal(t, 1, u.Precision())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Higher_Better")
	require.NoError(t, err)
	assert.Equal(t, HigherBetter, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirectionRange, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestColorForCategory(t *testing.T) {
	assert.Equal(t, "orange", ColorForCategory("Lipidi"))
	assert.Equal(t, "purple", ColorForCategory("Vitamins"))
	assert.Equal(t, "blue", ColorForCategory("Emocromo"))
	assert.Equal(t, DefaultColor, ColorForCategory("Hormones"))
}

func TestParameterConfig_UnmarshalLenient(t *testing.T) {
	data := `{"name":"LEUCOCITI","unit":"10^3/µL","min":"4,0","max":10,"decimals":1,"source":"import","tags":["x"]}`
	var p ParameterConfig
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	assert.Equal(t, "LEUCOCITI", p.Name)
	require.NotNil(t, p.Min)
	assert.InDelta(t, 4.0, *p.Min, 1e-12)
	require.NotNil(t, p.Max)
	assert.InDelta(t, 10.0, *p.Max, 1e-12)
	assert.Equal(t, 1, *p.Decimals)
	assert.Empty(t, p.Direction, "missing fields stay missing until Migrate")
	assert.Contains(t, p.Extra, "source")
	assert.Contains(t, p.Extra, "tags")
}

func TestParameterConfig_EmptyBoundsAreUnset(t *testing.T) {
	var p ParameterConfig
	require.NoError(t, json.Unmarshal([]byte(`{"name":"X","min":"","max":null}`), &p))
	assert.Nil(t, p.Min)
	assert.Nil(t, p.Max)
}

func TestParameterConfig_MarshalKeepsExtra(t *testing.T) {
	var p ParameterConfig
	require.NoError(t, json.Unmarshal([]byte(`{"name":"X","unit":"u","min":1,"source":"lab"}`), &p))
	p = Migrate(p)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"X","unit":"u","min":1,"max":null,"decimals":1,"direction":"range","category":"Other","color":"blue","source":"lab"}`, string(out))
}

func TestParameterConfig_BadNameType(t *testing.T) {
	var p ParameterConfig
	err := json.Unmarshal([]byte(`{"name":5}`), &p)
	assert.Error(t, err)
}

func TestParameterConfig_NonStringTextFieldsReadEmpty(t *testing.T) {
	var p ParameterConfig
	require.NoError(t, json.Unmarshal([]byte(`{"name":"X","category":5,"notes":["a"],"unit":true}`), &p))
	assert.Equal(t, "X", p.Name)
	assert.Empty(t, p.Category)
	assert.Empty(t, p.Notes)
	assert.Empty(t, p.Unit)
}
