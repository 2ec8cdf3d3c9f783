// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package evaluate

import (
	"fmt"
	"math"

	"github.com/davetashner/labtrack/internal/exam"
)

// Level grades an out-of-range value.
type Level string

const (
	LevelNone     Level = "none"
	LevelLight    Level = "light"
	LevelModerate Level = "moderate"
	LevelSevere   Level = "severe"
)

// Label returns the display label for the level.
func (l Level) Label() string {
	switch l {
	case LevelLight:
		return "Light"
	case LevelModerate:
		return "Moderate"
	case LevelSevere:
		return "Severe"
	}
	return "OK"
}

// Ratio cut-offs between severity levels.
const (
	DefaultLightRatio    = 0.10
	DefaultModerateRatio = 0.25
)

// Severity describes how far a value lies past its nearer limit, relative
// to that limit's magnitude.
type Severity struct {
	Label string  `json:"label"`
	Level Level   `json:"level"`
	Ratio float64 `json:"ratio"`
}

// None is the severity of an in-range value.
var None = Severity{Label: LevelNone.Label(), Level: LevelNone}

// noValue is the severity reported when there is nothing to grade.
var noValue = Severity{Label: "n/a", Level: LevelNone}

// Thresholds are the ratio cut-offs: ratios below Light are light, below
// Moderate are moderate, and anything else is severe.
type Thresholds struct {
	Light    float64 `json:"light" yaml:"light"`
	Moderate float64 `json:"moderate" yaml:"moderate"`
}

// DefaultThresholds returns the standard 10% / 25% cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{Light: DefaultLightRatio, Moderate: DefaultModerateRatio}
}

// Validate checks that 0 < Light < Moderate.
func (t Thresholds) Validate() error {
	if !(t.Light > 0) || !(t.Moderate > t.Light) || !finite(t.Moderate) {
		return fmt.Errorf("severity thresholds must satisfy 0 < light < moderate, got light=%g moderate=%g", t.Light, t.Moderate)
	}
	return nil
}

// Grade maps a ratio to a severity. Non-positive and non-finite ratios
// grade as none.
func (t Thresholds) Grade(ratio float64) Severity {
	if !finite(ratio) || ratio <= 0 {
		return None
	}
	var level Level
	switch {
	case ratio < t.Light:
		level = LevelLight
	case ratio < t.Moderate:
		level = LevelModerate
	default:
		level = LevelSevere
	}
	return Severity{Label: level.Label(), Level: level, Ratio: ratio}
}

// Score grades value against cfg with these thresholds.
//
// A LOW value scores (min-v)/|min| and a HIGH value (v-max)/|max|. A limit
// of zero has no magnitude to compare against, so a value beyond a zero
// limit grades as none even though Classify still flags it.
func (t Thresholds) Score(cfg exam.ParameterConfig, value *float64) Severity {
	if value == nil || !finite(*value) {
		return noValue
	}
	v := *value
	if cfg.Min != nil && v < *cfg.Min && *cfg.Min != 0 {
		return t.Grade((*cfg.Min - v) / math.Abs(*cfg.Min))
	}
	if cfg.Max != nil && v > *cfg.Max && *cfg.Max != 0 {
		return t.Grade((v - *cfg.Max) / math.Abs(*cfg.Max))
	}
	return None
}

// Score grades value with the default thresholds.
func Score(cfg exam.ParameterConfig, value *float64) Severity {
	return DefaultThresholds().Score(cfg, value)
}
