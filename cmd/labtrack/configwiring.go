package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/config"
	"github.com/davetashner/labtrack/internal/store"
)

// settings is the effective configuration of one command run: global
// config, then the working directory's .labtrack.yaml, then flags.
type settings struct {
	Config   *config.Config
	DataFile string
	Options  analysis.Options
}

// loadConfig merges the global and working-directory config files.
func loadConfig() (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	repo, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", config.FileName, err)
	}
	return config.Merge(global, repo), nil
}

// loadSettings loads and validates config and applies the --data flag.
func loadSettings() (*settings, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, exitError(ExitFailure, "labtrack: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "labtrack: %v", err)
	}

	s := &settings{
		Config:   cfg,
		DataFile: store.DefaultPath(),
		Options:  analysisOptions(cfg),
	}
	switch {
	case dataPath != "":
		s.DataFile = dataPath
	case cfg.DataFile != "":
		s.DataFile = cfg.DataFile
	}
	return s, nil
}

// analysisOptions converts config values into view options. Unset values
// keep their defaults.
func analysisOptions(cfg *config.Config) analysis.Options {
	opts := analysis.DefaultOptions()
	opts.Thresholds = cfg.Thresholds()
	if cfg.Display.Cards > 0 {
		opts.Cards = cfg.Display.Cards
	}
	if cfg.Display.SparklinePoints > 0 {
		opts.SparklinePoints = cfg.Display.SparklinePoints
	}
	if cfg.Display.MAWindow > 0 {
		opts.Window = cfg.Display.MAWindow
	}
	return opts
}

// openBook loads settings and the data file they point at.
func openBook() (*store.Book, *settings, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	b, err := store.Load(s.DataFile)
	if err != nil {
		return nil, nil, exitError(ExitFailure, "labtrack: %v", err)
	}
	slog.Debug("loaded data", "path", s.DataFile, "parameters", b.Catalog.Len(), "reports", len(b.Reports))
	return b, s, nil
}

// saveBook writes b back to the settings' data file.
func saveBook(s *settings, b *store.Book) error {
	if err := store.Save(s.DataFile, b); err != nil {
		return exitError(ExitFailure, "labtrack: %v", err)
	}
	slog.Debug("saved data", "path", s.DataFile)
	return nil
}

// outputFormat picks the --format flag value, else the configured
// output_format, else text.
func outputFormat(flag string, s *settings) (string, error) {
	format := flag
	if format == "" {
		format = s.Config.OutputFormat
	}
	if format == "" {
		format = "text"
	}
	format = strings.ToLower(format)
	if format != "text" && format != "json" {
		return "", exitError(ExitInvalidArgs, "labtrack: unsupported format %q (supported: text, json)", format)
	}
	return format, nil
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
