// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package report

import (
	"github.com/fatih/color"

	"github.com/davetashner/labtrack/internal/evaluate"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorFaint  = color.New(color.Faint)
	colorBold   = color.New(color.Bold)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// toneColor returns the printer for a traffic-light tone.
func toneColor(t evaluate.Tone) *color.Color {
	switch t {
	case evaluate.ToneOK:
		return colorGreen
	case evaluate.ToneWarn:
		return colorYellow
	case evaluate.ToneBad:
		return colorRed
	default:
		return colorFaint
	}
}

// Dot renders the status dot for a tone.
func Dot(t evaluate.Tone) string {
	return toneColor(t).Sprint("●")
}

// ColorTone colors text with a tone.
func ColorTone(t evaluate.Tone, s string) string {
	return toneColor(t).Sprint(s)
}

// ColorStatus colors LOW/HIGH/NORMAL labels.
func ColorStatus(val string) string {
	switch evaluate.Status(val) {
	case evaluate.Low, evaluate.High:
		return colorRed.Sprint(val)
	case evaluate.Normal:
		return colorGreen.Sprint(val)
	case evaluate.NoData:
		return colorFaint.Sprint(val)
	default:
		return val
	}
}

// ColorSeverity colors severity labels.
func ColorSeverity(val string) string {
	switch val {
	case evaluate.LevelSevere.Label(), evaluate.LevelModerate.Label():
		return colorRed.Sprint(val)
	case evaluate.LevelLight.Label():
		return colorYellow.Sprint(val)
	case evaluate.LevelNone.Label():
		return colorGreen.Sprint(val)
	default:
		return colorFaint.Sprint(val)
	}
}

// ColorDelta dims a missing change.
func ColorDelta(val string) string {
	if val == "" || val == evaluate.Missing {
		return colorFaint.Sprint(val)
	}
	return val
}
