package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/davetashner/labtrack/internal/evaluate"
)

// OutputFormats are the accepted values of output_format.
var OutputFormats = []string{"text", "json"}

// LogFormats are the accepted values of log_format.
var LogFormats = []string{"text", "json"}

// maxDisplay bounds the display counts.
const maxDisplay = 50

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" && !slices.Contains(OutputFormats, cfg.OutputFormat) {
		errs = append(errs, fmt.Sprintf("output_format: invalid value %q (must be %s)", cfg.OutputFormat, strings.Join(OutputFormats, " or ")))
	}
	if cfg.LogFormat != "" && !slices.Contains(LogFormats, cfg.LogFormat) {
		errs = append(errs, fmt.Sprintf("log_format: invalid value %q (must be %s)", cfg.LogFormat, strings.Join(LogFormats, " or ")))
	}

	if cfg.Severity.Light < 0 {
		errs = append(errs, fmt.Sprintf("severity.light: must be positive, got %g", cfg.Severity.Light))
	}
	if cfg.Severity.Moderate < 0 {
		errs = append(errs, fmt.Sprintf("severity.moderate: must be positive, got %g", cfg.Severity.Moderate))
	}
	if cfg.Severity.Light >= 0 && cfg.Severity.Moderate >= 0 {
		if err := cfg.Thresholds().Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("severity: %v", err))
		}
	}

	checkCount := func(key string, n int) {
		if n < 0 || n > maxDisplay {
			errs = append(errs, fmt.Sprintf("%s: must be between 1 and %d, got %d", key, maxDisplay, n))
		}
	}
	checkCount("display.cards", cfg.Display.Cards)
	checkCount("display.sparkline_points", cfg.Display.SparklinePoints)
	checkCount("display.ma_window", cfg.Display.MAWindow)

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Thresholds returns the severity cut-offs, falling back to the defaults
// for unset values.
func (c *Config) Thresholds() evaluate.Thresholds {
	th := evaluate.DefaultThresholds()
	if c.Severity.Light != 0 {
		th.Light = c.Severity.Light
	}
	if c.Severity.Moderate != 0 {
		th.Moderate = c.Severity.Moderate
	}
	return th
}
