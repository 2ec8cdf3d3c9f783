// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/labtrack/internal/exam"
)

func TestParseParameters_TOML(t *testing.T) {
	data := `
[[parameter]]
name = "ferritina"
unit = "ng/mL"
min = 30
max = 400
category = "Iron"

[[parameter]]
name = "PCR"
max = 5
direction = "lower_better"
decimals = 2
`
	got, err := ParseParameters("ranges.toml", []byte(data))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "FERRITINA", got[0].Name)
	assert.Equal(t, 30.0, *got[0].Min)
	assert.Equal(t, "Iron", got[0].Category)
	assert.Equal(t, exam.DirectionRange, got[0].Direction)

	assert.Nil(t, got[1].Min)
	assert.Equal(t, exam.LowerBetter, got[1].Direction)
	assert.Equal(t, 2, *got[1].Decimals)
}

func TestParseParameters_YAML(t *testing.T) {
	data := `
parameters:
  - name: vitamina b12
    unit: pg/mL
    min: 200
    max: 900
    category: Vitamins
`
	got, err := ParseParameters("ranges.yml", []byte(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "VITAMINA B12", got[0].Name)
	assert.Equal(t, "purple", got[0].Color, "color follows category")
}

func TestParseParameters_JSON(t *testing.T) {
	got, err := ParseParameters("dict.json", []byte(`[{"name":"PCR","max":"5"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5.0, *got[0].Max)

	got, err = ParseParameters("backup.json", []byte(`{"version":3,"dict":[{"name":"A"},{"name":"B"}],"reports":[]}`))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseParameters_Errors(t *testing.T) {
	_, err := ParseParameters("ranges.ini", nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ParseParameters("ranges.toml", []byte("[[parameter]]\nunit = \"x\"\n"))
	assert.ErrorContains(t, err, "has no name")

	_, err = ParseParameters("ranges.yaml", []byte("parameters:\n  - name: X\n    direction: sideways\n"))
	assert.ErrorContains(t, err, "invalid direction")

	_, err = ParseParameters("ranges.toml", []byte("not = [valid"))
	assert.Error(t, err)
}

func TestParseCSV(t *testing.T) {
	sequentialIDs(t)
	in := strings.Join([]string{
		"date,location,notes,param,value,unit,min,max",
		"2024-03-01,Lab,,GLUCOSIO,95,mg/dL,70,100",
		"2024-03-01,Lab,,FERRITINA,\"45,5\",ng/mL,30,",
		"2024-03-01,Lab,,EMOGLOBINA,n/a,,,",
		"2024-01-01,\"Hospital, ward 2\",\"line one\",GLUCOSIO,88,mg/dL,70,100",
	}, "\n")

	res, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, res.Reports, 2)

	first := res.Reports[0]
	assert.Equal(t, exam.Date("2024-03-01"), first.Date)
	assert.Equal(t, []exam.Entry{
		{Param: "GLUCOSIO", Value: "95"},
		{Param: "FERRITINA", Value: "45.5"},
	}, first.Exams)
	assert.Equal(t, "Hospital, ward 2", res.Reports[1].Location)

	require.Len(t, res.Parameters, 2)
	assert.Equal(t, "FERRITINA", res.Parameters[1].Name)
	assert.Equal(t, 30.0, *res.Parameters[1].Min)
	assert.Nil(t, res.Parameters[1].Max)
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("when,what\n1,2\n"))
	assert.ErrorContains(t, err, "missing column")

	_, err = ParseCSV(strings.NewReader("date,param,value\nsoon,X,1\n"))
	assert.ErrorContains(t, err, "invalid date")

	res, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Reports)
}

func TestParseCSV_RepeatedParameterStartsNewReport(t *testing.T) {
	sequentialIDs(t)
	in := strings.Join([]string{
		"date,location,notes,param,value,unit,min,max",
		"2024-01-01,Lab,,GLUCOSIO,120,mg/dL,70,100",
		"2024-01-01,Lab,,COLESTEROLO,180,mg/dL,120,200",
		"2024-01-01,Lab,,glucosio,90,mg/dL,70,100",
	}, "\n")

	res, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, res.Reports, 2)
	assert.Equal(t, []exam.Entry{
		{Param: "GLUCOSIO", Value: "120"},
		{Param: "COLESTEROLO", Value: "180"},
	}, res.Reports[0].Exams)
	assert.Equal(t, []exam.Entry{{Param: "GLUCOSIO", Value: "90"}}, res.Reports[1].Exams)
	assert.Equal(t, exam.Date("2024-01-01"), res.Reports[1].Date)
	assert.Equal(t, "Lab", res.Reports[1].Location)
}
