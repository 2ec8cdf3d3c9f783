package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/labtrack/internal/report"
)

// Dashboard flag values.
var (
	dashboardFormat   string
	dashboardSections string
)

// dashboardCmd shows the overall state, key metrics and anomalies.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the latest state of every parameter",
	Long: `Show the overall state, the latest value, change and sparkline of the key
parameters, and every parameter whose latest value is out of range, most
severe first.

Sections: ` + strings.Join(report.DefaultSections, ", ") + `, history.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardFormat, "format", "f", "", "output format: text or json (default: output_format from config, else text)")
	dashboardCmd.Flags().StringVar(&dashboardSections, "sections", "", "comma-separated list of sections to include")
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	format, err := outputFormat(dashboardFormat, s)
	if err != nil {
		return err
	}

	sections := splitList(dashboardSections)
	available := report.List()
	for _, name := range sections {
		if !slices.Contains(available, name) {
			return exitError(ExitInvalidArgs, "labtrack: unknown section %q (available: %s)", name, strings.Join(available, ", "))
		}
	}

	in := &report.Input{Book: b, Options: s.Options}
	w := cmd.OutOrStdout()
	if format == "json" {
		err = report.RenderJSON(w, in, sections, time.Now())
	} else {
		err = report.Render(w, in, sections)
	}
	if err != nil {
		return classify(err)
	}
	return nil
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
