package report

import (
	"fmt"

	"github.com/davetashner/labtrack/internal/evaluate"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/trend"
)

// FormatChange renders a change as "+5 (50%)", or "--" without a delta.
func FormatChange(c trend.Change, cfg exam.ParameterConfig) string {
	if c.Delta == nil {
		return evaluate.Missing
	}
	s := evaluate.FormatSigned(c.Delta, cfg.Precision())
	if c.Percent != nil {
		s += fmt.Sprintf(" (%s%%)", evaluate.FormatValue(c.Percent, 1))
	}
	return s
}

// FormatMeasure renders a value with its unit.
func FormatMeasure(v *float64, cfg exam.ParameterConfig) string {
	s := evaluate.FormatValue(v, cfg.Precision())
	if v == nil || cfg.Unit == "" {
		return s
	}
	return s + " " + cfg.Unit
}

// Arrow points up for HIGH and down for LOW.
func Arrow(st evaluate.Status) string {
	switch st {
	case evaluate.High:
		return "↑"
	case evaluate.Low:
		return "↓"
	}
	return ""
}

// statusText is the label shown next to a dot: the status, plus the
// severity when out of range.
func statusText(st evaluate.Status, sev evaluate.Severity) string {
	if st.OutOfRange() {
		return string(st) + " " + sev.Label
	}
	return string(st)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
