// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package evaluate classifies recorded values against a parameter's
// reference range and grades how far outside the range they fall.
package evaluate

import (
	"math"

	"github.com/davetashner/labtrack/internal/exam"
)

// Status is the range classification of a single value.
type Status string

const (
	NoData Status = "NO_DATA"
	Low    Status = "LOW"
	High   Status = "HIGH"
	Normal Status = "NORMAL"
)

// OutOfRange reports whether s is LOW or HIGH.
func (s Status) OutOfRange() bool {
	return s == Low || s == High
}

// Classify places value against cfg's bounds. Bounds are inclusive and an
// unset bound is never crossed. A nil or non-finite value has no data.
func Classify(cfg exam.ParameterConfig, value *float64) Status {
	if value == nil || !finite(*value) {
		return NoData
	}
	v := *value
	if cfg.Min != nil && v < *cfg.Min {
		return Low
	}
	if cfg.Max != nil && v > *cfg.Max {
		return High
	}
	return Normal
}

// ClassifyValue classifies a raw recorded value.
func ClassifyValue(cfg exam.ParameterConfig, value exam.Value) Status {
	return Classify(cfg, value.Ptr())
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
