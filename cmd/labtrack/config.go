package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/config"
	"github.com/davetashner/labtrack/internal/store"
)

// Config command flags.
var (
	configGlobal bool
	configAll    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify labtrack configuration",
	Long: `View and modify labtrack configuration.

Settings come from three layers, later ones winning:
  built-in defaults
  ~/.config/labtrack/config.yaml (global)
  .labtrack.yaml in the working directory (local)

The --data flag overrides data_file for a single run.

Note: config set rewrites the file and does not preserve comments.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get the effective value of a setting. Unset settings print their default.

Examples:
  labtrack config get data_file
  labtrack config get severity.moderate
  labtrack config get display
  labtrack config get --global output_format`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in .labtrack.yaml, or in the global config
with --global. The value is parsed as the setting's type and the whole file
is validated before it is written.

Examples:
  labtrack config set output_format json
  labtrack config set severity.moderate 0.3
  labtrack config set --global data_file ~/labs/data.json`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE:      runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration values and where they come from",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "read only the global config")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to the global config")
	configListCmd.Flags().BoolVar(&configAll, "all", false, "include settings left at their default")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

// defaultValues holds the built-in value of every config key.
func defaultValues() map[string]any {
	opts := analysis.DefaultOptions()
	return map[string]any{
		"data_file":                store.DefaultPath(),
		"output_format":            "text",
		"log_format":               "text",
		"severity.light":           opts.Thresholds.Light,
		"severity.moderate":        opts.Thresholds.Moderate,
		"display.cards":            opts.Cards,
		"display.sparkline_points": opts.SparklinePoints,
		"display.ma_window":        opts.Window,
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	var cfg *config.Config
	var err error
	if configGlobal {
		cfg, err = config.LoadGlobal()
	} else {
		cfg, err = loadConfig()
	}
	if err != nil {
		return exitError(ExitFailure, "labtrack: %v", err)
	}

	val, err := config.GetValue(cfg, key)
	if errors.Is(err, config.ErrNotSet) {
		if d, ok := defaultValues()[key]; ok {
			val, err = d, nil
		}
	}
	if err != nil {
		return exitError(ExitInvalidArgs, "labtrack: %v", err)
	}
	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	target := filepath.Join(".", config.FileName)
	if configGlobal {
		target = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(target)
	if err != nil {
		return exitError(ExitFailure, "labtrack: loading %s: %v", target, err)
	}
	if err := config.SetValue(data, key, raw); err != nil {
		return exitError(ExitInvalidArgs, "labtrack: %v", err)
	}
	if err := config.SaveRaw(target, data); err != nil {
		return exitError(ExitInvalidArgs, "labtrack: %v", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, raw)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return exitError(ExitFailure, "labtrack: loading global config: %v", err)
	}
	localCfg, err := config.Load(".")
	if err != nil {
		return exitError(ExitFailure, "labtrack: loading %s: %v", config.FileName, err)
	}

	type entry struct {
		value  any
		source string
	}
	seen := make(map[string]entry)
	if configAll {
		for k, v := range defaultValues() {
			seen[k] = entry{value: v, source: "default"}
		}
	}
	for _, layer := range []struct {
		cfg    *config.Config
		source string
	}{{globalCfg, "global"}, {localCfg, "local"}} {
		m, err := configToFlatMap(layer.cfg)
		if err != nil {
			return err
		}
		for k, v := range m {
			seen[k] = entry{value: v, source: layer.source}
		}
	}

	if len(seen) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'labtrack config set <key> <value>' to set values, or 'labtrack config list --all' to see defaults.")
		return nil
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		e := seen[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, formatSource(e.source))
	}
	return nil
}

// printValue outputs scalars as plain text and sections as YAML.
func printValue(cmd *cobra.Command, val any) error {
	if m, ok := val.(map[string]any); ok {
		data, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// configToFlatMap converts a Config to a flat dot-notation map of its set
// values.
func configToFlatMap(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return config.FlattenMap(m, ""), nil
}

var sourceColors = map[string]*color.Color{
	"global":  color.New(color.FgCyan),
	"local":   color.New(color.FgGreen),
	"default": color.New(color.Faint),
}

func formatSource(source string) string {
	if c, ok := sourceColors[source]; ok {
		return c.Sprintf("(%s)", source)
	}
	return fmt.Sprintf("(%s)", source)
}
