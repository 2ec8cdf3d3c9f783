// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package evaluate

import (
	"strconv"
	"strings"

	"github.com/davetashner/labtrack/internal/exam"
)

// Missing is shown in place of a value that does not exist.
const Missing = "--"

// FormatValue renders v with at most decimals digits after the point,
// dropping trailing zeros.
func FormatValue(v *float64, decimals int) string {
	if v == nil || !finite(*v) {
		return Missing
	}
	decimals = min(max(decimals, 0), exam.MaxDecimals)
	s := strconv.FormatFloat(*v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatSigned is FormatValue with an explicit plus sign on positive values.
func FormatSigned(v *float64, decimals int) string {
	s := FormatValue(v, decimals)
	if v != nil && *v > 0 && s != "0" {
		return "+" + s
	}
	return s
}

// FormatRange describes cfg's reference range, e.g. "70 - 100 mg/dL",
// ">= 30 ng/mL" or "<= 130 mg/dL". A parameter without bounds shows "-".
func FormatRange(cfg exam.ParameterConfig) string {
	d := cfg.Precision()
	var s string
	switch {
	case !cfg.HasRange():
		s = "-"
	case cfg.Min != nil && cfg.Max != nil:
		s = FormatValue(cfg.Min, d) + " - " + FormatValue(cfg.Max, d)
	case cfg.Min != nil:
		s = ">= " + FormatValue(cfg.Min, d)
	default:
		s = "<= " + FormatValue(cfg.Max, d)
	}
	return strings.TrimSpace(s + " " + cfg.Unit)
}

// Tone is the traffic-light color of a value's status dot.
type Tone string

const (
	ToneMuted Tone = "muted"
	ToneOK    Tone = "ok"
	ToneWarn  Tone = "warn"
	ToneBad   Tone = "bad"
)

// ToneOf returns the dot tone: muted without data, ok in range, warn for a
// light deviation and bad for anything worse (including zero-limit cases).
func (t Thresholds) ToneOf(cfg exam.ParameterConfig, value *float64) Tone {
	st := Classify(cfg, value)
	switch {
	case st == NoData:
		return ToneMuted
	case !st.OutOfRange():
		return ToneOK
	case t.Score(cfg, value).Level == LevelLight:
		return ToneWarn
	default:
		return ToneBad
	}
}

// Overall summarizes a count of anomalous parameters: none is ok, up to
// two is warn, more is bad.
func Overall(anomalies int) Tone {
	switch {
	case anomalies <= 0:
		return ToneOK
	case anomalies <= 2:
		return ToneWarn
	default:
		return ToneBad
	}
}

// OverallLabel is the headline text for Overall.
func OverallLabel(t Tone) string {
	switch t {
	case ToneOK:
		return "OK"
	case ToneWarn:
		return "Attention"
	case ToneBad:
		return "Critical"
	}
	return ""
}
