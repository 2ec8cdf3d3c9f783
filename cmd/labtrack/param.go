// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/labtrack/internal/catalog"
	"github.com/davetashner/labtrack/internal/evaluate"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/report"
	"github.com/davetashner/labtrack/internal/store"
)

// Param command flag values.
var (
	paramName      string
	paramUnit      string
	paramMin       float64
	paramMax       float64
	paramNoMin     bool
	paramNoMax     bool
	paramDecimals  int
	paramDirection string
	paramCategory  string
	paramNotes     string
	paramColor     string
	paramSort      bool
	paramListCat   string
	paramListFmt   string
	paramOverwrite bool
)

// paramCmd is the parent command for parameter catalog subcommands.
var paramCmd = &cobra.Command{
	Use:   "param",
	Short: "Manage the parameter catalog",
	Long: `Manage the parameter catalog: unit, reference range, display precision,
preferred direction and category of every lab parameter.

Names are matched ignoring case, accents and repeated spaces, so
"Glucosio" and "GLUCOSIO" are the same parameter.`,
}

var paramAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a parameter",
	Long: `Add a parameter.

Examples:
  labtrack param add FERRITINA --unit ng/mL --min 30 --max 400 --category Iron`,
	Args: cobra.ExactArgs(1),
	RunE: runParamAdd,
}

var paramEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Change a parameter's settings",
	Long: `Change a parameter's settings. Only the given flags change. Changing the
name with --name also renames the parameter in every report.`,
	Args: cobra.ExactArgs(1),
	RunE: runParamEdit,
}

var paramRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a parameter and its report entries",
	Args:  cobra.ExactArgs(2),
	RunE:  runParamRename,
}

var paramRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a parameter (report entries are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runParamRemove,
}

var paramListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List parameters",
	Args:    cobra.NoArgs,
	RunE:    runParamList,
}

var paramImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import parameters from a TOML, YAML or JSON file",
	Long: `Import parameters from a file. The format follows the extension:

  .toml   [[parameter]] tables
  .yaml   a top-level "parameters" list
  .json   a list of parameters, or a labtrack backup (its catalog is used)

New parameters are added. Existing ones are skipped unless --overwrite is
given.`,
	Args: cobra.ExactArgs(1),
	RunE: runParamImport,
}

func init() {
	for _, c := range []*cobra.Command{paramAddCmd, paramEditCmd} {
		f := c.Flags()
		f.StringVar(&paramUnit, "unit", "", "unit of measure (e.g. mg/dL)")
		f.Float64Var(&paramMin, "min", 0, "lower reference limit")
		f.Float64Var(&paramMax, "max", 0, "upper reference limit")
		f.IntVar(&paramDecimals, "decimals", exam.DefaultDecimals, "decimals to display")
		f.StringVar(&paramDirection, "direction", "", "preferred direction: range, higher_better or lower_better")
		f.StringVar(&paramCategory, "category", "", "category (e.g. Lipids)")
		f.StringVar(&paramNotes, "notes", "", "free-text notes")
		f.StringVar(&paramColor, "color", "", "color tag (default: derived from category)")
	}
	paramEditCmd.Flags().StringVar(&paramName, "name", "", "new name; report entries are renamed too")
	paramEditCmd.Flags().BoolVar(&paramNoMin, "no-min", false, "clear the lower limit")
	paramEditCmd.Flags().BoolVar(&paramNoMax, "no-max", false, "clear the upper limit")

	paramListCmd.Flags().BoolVar(&paramSort, "sort", false, "sort by name instead of catalog order")
	paramListCmd.Flags().StringVar(&paramListCat, "category", "", "only list this category")
	paramListCmd.Flags().StringVarP(&paramListFmt, "format", "f", "", "output format: text or json")

	paramImportCmd.Flags().BoolVar(&paramOverwrite, "overwrite", false, "replace the settings of parameters that already exist")

	paramCmd.AddCommand(paramAddCmd)
	paramCmd.AddCommand(paramEditCmd)
	paramCmd.AddCommand(paramRenameCmd)
	paramCmd.AddCommand(paramRemoveCmd)
	paramCmd.AddCommand(paramListCmd)
	paramCmd.AddCommand(paramImportCmd)
}

// applyParamFlags copies the changed flags onto cfg.
func applyParamFlags(flags *pflag.FlagSet, cfg *exam.ParameterConfig) error {
	if flags.Changed("unit") {
		cfg.Unit = strings.TrimSpace(paramUnit)
	}
	if flags.Changed("min") {
		cfg.Min = exam.Float(paramMin)
	}
	if flags.Changed("max") {
		cfg.Max = exam.Float(paramMax)
	}
	if paramNoMin {
		cfg.Min = nil
	}
	if paramNoMax {
		cfg.Max = nil
	}
	if cfg.Min != nil && cfg.Max != nil && *cfg.Min > *cfg.Max {
		return exitError(ExitInvalidArgs, "labtrack: --min %g is above --max %g", *cfg.Min, *cfg.Max)
	}
	if flags.Changed("decimals") {
		if paramDecimals < 0 || paramDecimals > exam.MaxDecimals {
			return exitError(ExitInvalidArgs, "labtrack: --decimals must be between 0 and %d", exam.MaxDecimals)
		}
		cfg.Decimals = exam.Int(paramDecimals)
	}
	if flags.Changed("direction") {
		dir, err := exam.ParseDirection(paramDirection)
		if err != nil {
			return exitError(ExitInvalidArgs, "labtrack: %v", err)
		}
		cfg.Direction = dir
	}
	if flags.Changed("category") {
		cfg.Category = strings.TrimSpace(paramCategory)
		if !flags.Changed("color") {
			cfg.Color = exam.ColorForCategory(cfg.Category)
		}
	}
	if flags.Changed("notes") {
		cfg.Notes = paramNotes
	}
	if flags.Changed("color") {
		cfg.Color = strings.TrimSpace(paramColor)
	}
	return nil
}

func runParamAdd(cmd *cobra.Command, args []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	cfg := exam.ParameterConfig{Name: args[0]}
	if err := applyParamFlags(cmd.Flags(), &cfg); err != nil {
		return err
	}
	if err := b.AddParameter(cfg); err != nil {
		return classify(err)
	}
	if err := saveBook(s, b); err != nil {
		return err
	}
	added := b.Config(cfg.Name)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.Name, evaluate.FormatRange(added))
	return nil
}

func runParamEdit(cmd *cobra.Command, args []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	cfg, ok := b.Catalog.Lookup(args[0])
	if !ok {
		return classify(fmt.Errorf("%q: %w", args[0], catalog.ErrNotFound))
	}
	if cmd.Flags().Changed("name") {
		cfg.Name = paramName
	}
	if err := applyParamFlags(cmd.Flags(), &cfg); err != nil {
		return err
	}

	renamed, err := b.UpdateParameter(args[0], cfg)
	if err != nil {
		return classify(err)
	}
	if err := saveBook(s, b); err != nil {
		return err
	}
	updated := b.Config(exam.DisplayName(cfg.Name))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", updated.Name, evaluate.FormatRange(updated))
	if renamed > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed %d report %s\n", renamed, plural(renamed, "entry", "entries"))
	}
	return nil
}

func runParamRename(cmd *cobra.Command, args []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	renamed, err := b.RenameParameter(args[0], args[1])
	if err != nil {
		return classify(err)
	}
	if err := saveBook(s, b); err != nil {
		return err
	}
	slog.Info("parameter renamed", "from", args[0], "to", args[1], "entries", renamed)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s (%d report %s)\n",
		args[0], exam.DisplayName(args[1]), renamed, plural(renamed, "entry", "entries"))
	return nil
}

func runParamRemove(cmd *cobra.Command, args []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	cfg, _ := b.Catalog.Lookup(args[0])
	if err := b.RemoveParameter(args[0]); err != nil {
		return classify(err)
	}
	if err := saveBook(s, b); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s; its report entries are kept\n", cfg.Name)
	return nil
}

func runParamList(cmd *cobra.Command, _ []string) error {
	b, s, err := openBook()
	if err != nil {
		return err
	}
	format, err := outputFormat(paramListFmt, s)
	if err != nil {
		return err
	}

	if paramListCat != "" && !containsFold(b.Catalog.Categories(), paramListCat) {
		return exitError(ExitInvalidArgs, "labtrack: unknown category %q (available: %s)",
			paramListCat, strings.Join(b.Catalog.Categories(), ", "))
	}

	params := b.Catalog.All()
	if paramSort {
		params = b.Catalog.Sorted()
	}
	filtered := make([]exam.ParameterConfig, 0, len(params))
	for _, p := range params {
		if paramListCat == "" || strings.EqualFold(p.Category, paramListCat) {
			filtered = append(filtered, p)
		}
	}

	w := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(w, filtered)
	}
	if len(filtered) == 0 {
		_, _ = fmt.Fprintln(w, "No parameters configured.")
		return nil
	}
	tbl := report.NewTable(
		report.Column{Header: "Parameter"},
		report.Column{Header: "Range"},
		report.Column{Header: "Category"},
		report.Column{Header: "Direction"},
		report.Column{Header: "Decimals", Align: report.AlignRight},
	)
	for _, p := range filtered {
		tbl.AddRow(p.Name, evaluate.FormatRange(p), p.Category, string(p.Direction), fmt.Sprint(p.Precision()))
	}
	return tbl.Render(w)
}

func runParamImport(cmd *cobra.Command, args []string) error {
	data, err := cmdFS.ReadFile(args[0])
	if err != nil {
		return exitError(ExitFailure, "labtrack: %v", err)
	}
	configs, err := store.ParseParameters(args[0], data)
	if err != nil {
		return classify(err)
	}

	b, s, err := openBook()
	if err != nil {
		return err
	}
	res, err := b.MergeParameters(configs, paramOverwrite)
	if err != nil {
		return classify(err)
	}
	if err := saveBook(s, b); err != nil {
		return err
	}
	slog.Info("parameters imported", "file", args[0], "added", res.Added, "updated", res.Updated, "skipped", res.Skipped)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s: %d added, %d updated, %d skipped\n",
		len(configs), plural(len(configs), "parameter", "parameters"), res.Added, res.Updated, res.Skipped)
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
