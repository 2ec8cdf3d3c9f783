// Package config handles .labtrack.yaml configuration files.
package config

// Config represents the contents of a .labtrack.yaml file.
type Config struct {
	DataFile     string         `yaml:"data_file,omitempty"`
	OutputFormat string         `yaml:"output_format,omitempty"`
	LogFormat    string         `yaml:"log_format,omitempty"`
	Severity     SeverityConfig `yaml:"severity,omitempty"`
	Display      DisplayConfig  `yaml:"display,omitempty"`
}

// SeverityConfig overrides the severity ratio cut-offs.
type SeverityConfig struct {
	Light    float64 `yaml:"light,omitempty"`
	Moderate float64 `yaml:"moderate,omitempty"`
}

// DisplayConfig tunes the dashboard and trend views.
type DisplayConfig struct {
	Cards           int `yaml:"cards,omitempty"`
	SparklinePoints int `yaml:"sparkline_points,omitempty"`
	MAWindow        int `yaml:"ma_window,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".labtrack.yaml"
