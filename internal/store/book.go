// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/davetashner/labtrack/internal/catalog"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/series"
)

var (
	// ErrReportNotFound indicates an unknown report id.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidReport indicates a draft missing its date or location.
	ErrInvalidReport = errors.New("invalid report")
)

// Book is the editing session over one data file: the catalog and the
// reports it evaluates. Callers own the Book and persist it with Save.
type Book struct {
	Catalog *catalog.Catalog
	Reports []exam.Report
}

// NewBook returns a Book over cat and reports. A nil catalog is replaced
// with an empty one.
func NewBook(cat *catalog.Catalog, reports []exam.Report) *Book {
	if cat == nil {
		cat = catalog.New(nil)
	}
	return &Book{Catalog: cat, Reports: reports}
}

// FromDocument builds a Book from a decoded document, defaulting every
// parameter configuration.
func FromDocument(doc *Document) *Book {
	return NewBook(catalog.New(doc.Dict), doc.Reports)
}

// Document returns the persisted form of b.
func (b *Book) Document() *Document {
	return &Document{
		Version: SchemaVersion,
		Dict:    b.Catalog.All(),
		Reports: slices.Clone(b.Reports),
	}
}

// Draft is a report being entered or edited.
type Draft struct {
	Date     exam.Date
	Location string
	Notes    string
	Entries  exam.EntryList
}

// validate checks the draft and returns the entries to store: only
// parseable values are kept, in canonical numeric form, and known
// parameters take the catalog's display name.
func (b *Book) validate(d Draft) ([]exam.Entry, error) {
	if _, ok := d.Date.Time(); !ok {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidReport, d.Date)
	}
	if strings.TrimSpace(d.Location) == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidReport)
	}

	entries := make([]exam.Entry, 0, len(d.Entries))
	for _, e := range d.Entries.Usable() {
		if cfg, ok := b.Catalog.Lookup(e.Param); ok {
			e.Param = cfg.Name
		}
		f, _ := e.Value.Float()
		e.Value = exam.NumberValue(f)
		entries = append(entries, e)
	}
	return entries, nil
}

// AddReport stores a new report built from d and returns it.
func (b *Book) AddReport(d Draft) (exam.Report, error) {
	entries, err := b.validate(d)
	if err != nil {
		return exam.Report{}, err
	}
	r := exam.Report{
		ID:       NewID(),
		Date:     d.Date,
		Location: strings.TrimSpace(d.Location),
		Notes:    strings.TrimSpace(d.Notes),
		Exams:    entries,
	}
	b.Reports = append(b.Reports, r)
	return r, nil
}

// UpdateReport replaces the content of report id with d, keeping its id
// and position.
func (b *Book) UpdateReport(id string, d Draft) (exam.Report, error) {
	i := b.reportIndex(id)
	if i < 0 {
		return exam.Report{}, fmt.Errorf("%q: %w", id, ErrReportNotFound)
	}
	entries, err := b.validate(d)
	if err != nil {
		return exam.Report{}, err
	}
	r := b.Reports[i]
	r.Date = d.Date
	r.Location = strings.TrimSpace(d.Location)
	r.Notes = strings.TrimSpace(d.Notes)
	r.Exams = entries
	b.Reports[i] = r
	return r, nil
}

// DeleteReport removes report id.
func (b *Book) DeleteReport(id string) error {
	i := b.reportIndex(id)
	if i < 0 {
		return fmt.Errorf("%q: %w", id, ErrReportNotFound)
	}
	b.Reports = slices.Delete(b.Reports, i, i+1)
	return nil
}

// Report returns the report with the given id. A unique id prefix of at
// least four characters also matches.
func (b *Book) Report(id string) (exam.Report, bool) {
	i := b.reportIndex(id)
	if i < 0 {
		return exam.Report{}, false
	}
	return b.Reports[i], true
}

func (b *Book) reportIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range b.Reports {
		if r.ID == id {
			return i
		}
	}
	if len(id) < 4 {
		return -1
	}
	found := -1
	for i, r := range b.Reports {
		if strings.HasPrefix(r.ID, id) {
			if found >= 0 {
				return -1
			}
			found = i
		}
	}
	return found
}

// ReportsNewestFirst returns the reports ordered by date, most recent
// first. Same-day reports appear in reverse insertion order, matching the
// descending series order.
func (b *Book) ReportsNewestFirst() []exam.Report {
	out := slices.Clone(b.Reports)
	slices.SortStableFunc(out, func(x, y exam.Report) int {
		return x.Date.Compare(y.Date)
	})
	slices.Reverse(out)
	return out
}

// Series extracts the recorded values of name.
func (b *Book) Series(name string, order series.Order) []series.Point {
	return series.Extract(b.Reports, name, order)
}

// Config resolves name to its configuration or the unknown default.
func (b *Book) Config(name string) exam.ParameterConfig {
	return b.Catalog.Resolve(name)
}

// AddParameter inserts a new configuration.
func (b *Book) AddParameter(cfg exam.ParameterConfig) error {
	cfg.Name = exam.DisplayName(cfg.Name)
	return b.Catalog.Insert(cfg)
}

// UpdateParameter replaces the configuration stored under name, renaming
// matching report entries when the name changes. It returns the number of
// rewritten entries.
func (b *Book) UpdateParameter(name string, cfg exam.ParameterConfig) (int, error) {
	cfg.Name = exam.DisplayName(cfg.Name)
	return b.Catalog.Update(name, cfg, b.Reports)
}

// RenameParameter renames a configuration and its report entries.
func (b *Book) RenameParameter(oldName, newName string) (int, error) {
	return b.Catalog.Rename(oldName, exam.DisplayName(newName), b.Reports)
}

// RemoveParameter deletes a configuration; report entries are kept.
func (b *Book) RemoveParameter(name string) error {
	return b.Catalog.Remove(name)
}

// ImportResult counts what a merge changed.
type ImportResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// MergeParameters adds configurations that are new and, when overwrite is
// set, replaces existing ones in place (keeping their stored name). Every
// configuration is validated first; on error the catalog is unchanged.
func (b *Book) MergeParameters(configs []exam.ParameterConfig, overwrite bool) (ImportResult, error) {
	for i, cfg := range configs {
		if exam.Normalize(cfg.Name) == "" {
			return ImportResult{}, fmt.Errorf("parameter %d: %w", i+1, catalog.ErrEmptyName)
		}
	}

	var res ImportResult
	for _, cfg := range configs {
		existing, ok := b.Catalog.Lookup(cfg.Name)
		switch {
		case !ok:
			if err := b.AddParameter(cfg); err != nil {
				return res, err
			}
			res.Added++
		case overwrite:
			cfg.Name = existing.Name
			if _, err := b.Catalog.Update(existing.Name, cfg, b.Reports); err != nil {
				return res, err
			}
			res.Updated++
		default:
			res.Skipped++
		}
	}
	return res, nil
}

// AppendReports adds imported reports, assigning ids to those without one.
func (b *Book) AppendReports(reports []exam.Report) int {
	for _, r := range reports {
		if r.ID == "" {
			r.ID = NewID()
		}
		b.Reports = append(b.Reports, r)
	}
	return len(reports)
}

// Replace swaps the whole content of b for doc, as a backup restore does.
func (b *Book) Replace(doc *Document) {
	nb := FromDocument(doc)
	b.Catalog = nb.Catalog
	b.Reports = nb.Reports
}
