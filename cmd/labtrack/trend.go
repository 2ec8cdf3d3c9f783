package main

import (
	"github.com/spf13/cobra"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/report"
	"github.com/davetashner/labtrack/internal/trend"
)

// Trend flag values.
var (
	trendMode   string
	trendFormat string
)

// trendCmd charts one parameter over time.
var trendCmd = &cobra.Command{
	Use:   "trend <parameter>",
	Short: "Chart one parameter over time",
	Long: `Show the dated series of one parameter with its status at each point,
a sparkline and summary statistics.

Modes:
  values  the recorded values (default)
  delta   the change from the previous value
  ma      the trailing moving average (window from display.ma_window)`,
	Args: cobra.ExactArgs(1),
	RunE: runTrend,
}

func init() {
	trendCmd.Flags().StringVarP(&trendMode, "mode", "m", "values", "series to plot: values, delta or ma")
	trendCmd.Flags().StringVarP(&trendFormat, "format", "f", "", "output format: text or json")
}

func runTrend(cmd *cobra.Command, args []string) error {
	mode, err := trend.ParseMode(trendMode)
	if err != nil {
		return exitError(ExitInvalidArgs, "labtrack: %v", err)
	}
	b, s, err := openBook()
	if err != nil {
		return err
	}
	format, err := outputFormat(trendFormat, s)
	if err != nil {
		return err
	}

	v, err := analysis.Trend(b, args[0], mode, s.Options)
	if err != nil {
		return classify(err)
	}
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return report.RenderTrend(cmd.OutOrStdout(), v, s.Options.Window)
}
