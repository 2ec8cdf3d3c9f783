// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/labtrack/internal/exam"
)

// ErrUnknownFormat indicates a file extension no importer handles.
var ErrUnknownFormat = errors.New("unknown file format")

// parameterFile is the layout of a hand-written catalog file:
//
//	[[parameter]]
//	name = "FERRITINA"
//	unit = "ng/mL"
//	min = 30
//	max = 400
//
// or, in YAML, a top-level "parameters" list with the same keys.
type parameterFile struct {
	Parameters []parameterSpec `toml:"parameter" yaml:"parameters"`
}

type parameterSpec struct {
	Name      string   `toml:"name" yaml:"name"`
	Unit      string   `toml:"unit" yaml:"unit"`
	Min       *float64 `toml:"min" yaml:"min"`
	Max       *float64 `toml:"max" yaml:"max"`
	Decimals  *int     `toml:"decimals" yaml:"decimals"`
	Direction string   `toml:"direction" yaml:"direction"`
	Category  string   `toml:"category" yaml:"category"`
	Notes     string   `toml:"notes" yaml:"notes"`
	Color     string   `toml:"color" yaml:"color"`
}

func (s parameterSpec) config() (exam.ParameterConfig, error) {
	dir, err := exam.ParseDirection(s.Direction)
	if err != nil {
		return exam.ParameterConfig{}, fmt.Errorf("%s: %w", s.Name, err)
	}
	color := s.Color
	if color == "" && s.Category != "" {
		color = exam.ColorForCategory(s.Category)
	}
	return exam.ParameterConfig{
		Name:      exam.DisplayName(s.Name),
		Unit:      strings.TrimSpace(s.Unit),
		Min:       s.Min,
		Max:       s.Max,
		Decimals:  s.Decimals,
		Direction: dir,
		Category:  strings.TrimSpace(s.Category),
		Notes:     s.Notes,
		Color:     color,
	}, nil
}

// ParseParameters decodes a catalog file, picking the decoder from the
// file extension: .toml, .yaml/.yml or .json. JSON may be a bare array of
// configurations or a full data file, whose dict is used.
func ParseParameters(name string, data []byte) ([]exam.ParameterConfig, error) {
	var file parameterFile
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	case ".json":
		return parseParametersJSON(name, data)
	default:
		return nil, fmt.Errorf("%s: %w (want .toml, .yaml or .json)", name, ErrUnknownFormat)
	}

	out := make([]exam.ParameterConfig, 0, len(file.Parameters))
	for i, spec := range file.Parameters {
		if exam.Normalize(spec.Name) == "" {
			return nil, fmt.Errorf("%s: parameter %d has no name", name, i+1)
		}
		cfg, err := spec.config()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, cfg)
	}
	return out, nil
}

func parseParametersJSON(name string, data []byte) ([]exam.ParameterConfig, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var configs []exam.ParameterConfig
		if err := json.Unmarshal(trimmed, &configs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return configs, nil
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return doc.Dict, nil
}

// CSVHeader is the column layout of CSV exports and imports.
var CSVHeader = []string{"date", "location", "notes", "param", "value", "unit", "min", "max"}

// CSVImport is the result of reading a CSV export back.
type CSVImport struct {
	Reports []exam.Report
	// Parameters holds configurations for parameters that carried a unit
	// or bounds in the file.
	Parameters []exam.ParameterConfig
}

// ParseCSV reads rows in CSVHeader layout. Consecutive rows sharing date,
// location and notes form one report; a parameter repeating within such a
// run starts the next report, so same-day reports at one place stay apart.
// Rows whose value does not parse are skipped.
func ParseCSV(r io.Reader) (*CSVImport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return &CSVImport{}, nil
	}

	col, err := csvColumns(records[0])
	if err != nil {
		return nil, err
	}

	res := &CSVImport{}
	seen := make(map[string]bool)
	var cur *exam.Report
	for line, rec := range records[1:] {
		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		date := exam.Date(field("date"))
		if _, ok := date.Time(); !ok {
			return nil, fmt.Errorf("csv line %d: invalid date %q", line+2, date)
		}
		value := exam.Value(field("value"))
		param := exam.DisplayName(field("param"))
		if param == "" {
			continue
		}
		f, ok := value.Float()
		if !ok {
			continue
		}

		location, notes := field("location"), field("notes")
		if cur == nil || cur.Date != date || cur.Location != location || cur.Notes != notes ||
			exam.EntryList(cur.Exams).Find(param) >= 0 {
			res.Reports = append(res.Reports, exam.Report{ID: NewID(), Date: date, Location: location, Notes: notes})
			cur = &res.Reports[len(res.Reports)-1]
		}
		cur.Exams = append(cur.Exams, exam.Entry{Param: param, Value: exam.NumberValue(f)})

		key := exam.Normalize(param)
		unit, lo, hi := field("unit"), field("min"), field("max")
		if seen[key] || (unit == "" && lo == "" && hi == "") {
			continue
		}
		seen[key] = true
		res.Parameters = append(res.Parameters, exam.ParameterConfig{
			Name: param,
			Unit: unit,
			Min:  exam.Value(lo).Ptr(),
			Max:  exam.Value(hi).Ptr(),
		})
	}
	return res, nil
}

func csvColumns(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"date", "param", "value"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", required)
		}
	}
	return col, nil
}
