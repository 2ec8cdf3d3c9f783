// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package exam

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Direction says which way a parameter is preferred to move. It is shown to
// the user but does not influence classification.
type Direction string

const (
	DirectionRange Direction = "range"
	HigherBetter   Direction = "higher_better"
	LowerBetter    Direction = "lower_better"
)

// ParseDirection validates a direction name. The empty string maps to
// DirectionRange.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.TrimSpace(strings.ToLower(s))); d {
	case "":
		return DirectionRange, nil
	case DirectionRange, HigherBetter, LowerBetter:
		return d, nil
	default:
		return "", fmt.Errorf("invalid direction %q (must be range, higher_better, or lower_better)", s)
	}
}

// Defaults applied by Migrate.
const (
	DefaultDecimals  = 1
	MaxDecimals      = 6
	DefaultCategory  = "Other"
	DefaultColor     = "blue"
	DefaultDirection = DirectionRange
)

// ParameterConfig is the reference configuration for one lab parameter.
//
// Decimals, Direction, Category and Color are optional on disk; Migrate is
// the one place that fills them in. Unknown JSON fields are kept in Extra
// and written back untouched.
type ParameterConfig struct {
	Name      string
	Unit      string
	Min       *float64
	Max       *float64
	Decimals  *int
	Direction Direction
	Category  string
	Notes     string
	Color     string

	Extra map[string]json.RawMessage
}

// Unknown is the configuration used for a parameter name with no catalog
// entry: no unit, no range, one decimal.
func Unknown(name string) ParameterConfig {
	return Migrate(ParameterConfig{Name: name})
}

// Migrate returns cfg with every optional field defaulted: decimals 1 (or
// the stored value clamped to 0..6), direction "range", category "Other",
// color "blue". Extra fields are preserved.
func Migrate(cfg ParameterConfig) ParameterConfig {
	out := cfg
	d := DefaultDecimals
	if cfg.Decimals != nil {
		d = clampDecimals(*cfg.Decimals)
	}
	out.Decimals = &d
	if out.Direction == "" {
		out.Direction = DefaultDirection
	}
	if strings.TrimSpace(out.Category) == "" {
		out.Category = DefaultCategory
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = DefaultColor
	}
	return out
}

// Precision is the number of decimals to display.
func (p ParameterConfig) Precision() int {
	if p.Decimals == nil {
		return DefaultDecimals
	}
	return clampDecimals(*p.Decimals)
}

// HasRange reports whether at least one bound is configured.
func (p ParameterConfig) HasRange() bool {
	return p.Min != nil || p.Max != nil
}

func clampDecimals(d int) int {
	return min(max(d, 0), MaxDecimals)
}

// ColorForCategory picks a display color tag from a free-text category.
func ColorForCategory(category string) string {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "lipid"):
		return "orange"
	case strings.Contains(c, "vita"):
		return "purple"
	case strings.Contains(c, "emo"), strings.Contains(c, "blood"), strings.Contains(c, "meta"):
		return "blue"
	default:
		return DefaultColor
	}
}

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

var knownKeys = []string{"name", "unit", "min", "max", "decimals", "direction", "category", "notes", "color"}

// UnmarshalJSON decodes a configuration leniently: bounds may be numbers,
// numeric strings (comma decimals allowed) or empty, and unrecognised keys
// land in Extra.
func (p *ParameterConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out ParameterConfig
	out.Name = stringField(raw, "name")
	out.Unit = stringField(raw, "unit")
	out.Category = stringField(raw, "category")
	out.Notes = stringField(raw, "notes")
	out.Color = stringField(raw, "color")
	dir := stringField(raw, "direction")
	out.Direction = Direction(dir)
	out.Min = numberField(raw, "min")
	out.Max = numberField(raw, "max")
	if d := numberField(raw, "decimals"); d != nil {
		n := int(math.Round(*d))
		out.Decimals = &n
	}

	for _, k := range knownKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	*p = out
	return nil
}

// MarshalJSON writes the known fields alongside any preserved extras.
func (p ParameterConfig) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+len(knownKeys))
	for k, v := range p.Extra {
		m[k] = v
	}
	m["name"] = p.Name
	m["unit"] = p.Unit
	m["min"] = p.Min
	m["max"] = p.Max
	if p.Decimals != nil {
		m["decimals"] = *p.Decimals
	}
	if p.Direction != "" {
		m["direction"] = p.Direction
	}
	if p.Category != "" {
		m["category"] = p.Category
	}
	if p.Notes != "" {
		m["notes"] = p.Notes
	}
	if p.Color != "" {
		m["color"] = p.Color
	}
	return json.Marshal(m)
}

// stringField reads a text field. Missing, null and non-string values
// read as "".
func stringField(raw map[string]json.RawMessage, key string) string {
	var s string
	if err := json.Unmarshal(raw[key], &s); err != nil {
		return ""
	}
	return s
}

// numberField reads a bound that may be a number, a string or missing.
// Anything that does not parse is treated as unset.
func numberField(raw map[string]json.RawMessage, key string) *float64 {
	data, ok := raw[key]
	if !ok {
		return nil
	}
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v.Ptr()
}
