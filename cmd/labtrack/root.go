package main

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	labtracklog "github.com/davetashner/labtrack/internal/log"
)

// Global flag values.
var (
	verbose  bool
	quiet    bool
	noColor  bool
	dataPath string
)

// rootCmd is the base command for labtrack.
var rootCmd = &cobra.Command{
	Use:   "labtrack",
	Short: "Track lab results and spot values out of range",
	Long: `Labtrack keeps a personal history of blood-test reports. Each report holds
dated measurements; each parameter has a reference range. Labtrack shows the
latest state of every parameter, grades out-of-range values by how far they
fall past their limit, and charts how values move over time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if noColor {
			color.NoColor = true
		}
		format := ""
		if cfg, err := loadConfig(); err == nil {
			format = cfg.LogFormat
		}
		if err := labtracklog.Setup(verbose, quiet, format); err != nil {
			_ = labtracklog.Setup(verbose, quiet, "")
			slog.Warn("ignoring log_format", "error", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "data file (default: data_file from config, else $XDG_DATA_HOME/labtrack/data.json)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(paramCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
