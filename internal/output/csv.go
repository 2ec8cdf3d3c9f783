// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/davetashner/labtrack/internal/store"
)

func init() {
	RegisterFormatter(NewCSVFormatter())
}

// CSVFormatter writes one row per measurement, newest report first, with
// the parameter's unit and bounds alongside.
type CSVFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*CSVFormatter)(nil)

// NewCSVFormatter returns a new CSVFormatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format writes the rows in store.CSVHeader layout.
func (f *CSVFormatter) Format(ex Export, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(store.CSVHeader); err != nil {
		return err
	}

	for _, r := range ex.Book.ReportsNewestFirst() {
		for _, e := range r.Exams {
			name := e.Param
			cfg, ok := ex.Book.Catalog.Lookup(e.Param)
			if ok {
				name = cfg.Name
			}
			row := []string{
				string(r.Date),
				flatten(r.Location),
				flatten(r.Notes),
				name,
				string(e.Value),
				cfg.Unit,
				bound(cfg.Min),
				bound(cfg.Max),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func flatten(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", " "), "\n", " ")
}

func bound(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
