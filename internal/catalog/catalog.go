// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package catalog holds the parameter reference configurations and resolves
// exam entries to them by canonical name.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davetashner/labtrack/internal/exam"
)

var (
	// ErrDuplicateParameter is matched by every *DuplicateParameterError.
	ErrDuplicateParameter = errors.New("duplicate parameter")

	// ErrNotFound indicates that no configuration matches a name.
	ErrNotFound = errors.New("parameter not found")

	// ErrEmptyName indicates a name that normalizes to the empty string.
	ErrEmptyName = errors.New("parameter name is empty")
)

// DuplicateParameterError reports a name that collides with an existing
// configuration under normalization.
type DuplicateParameterError struct {
	Name     string // name being inserted or renamed to
	Existing string // display name already in the catalog
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("parameter %q already exists as %q", e.Name, e.Existing)
}

// Is makes errors.Is(err, ErrDuplicateParameter) hold.
func (e *DuplicateParameterError) Is(target error) bool {
	return target == ErrDuplicateParameter
}

// Catalog is an ordered list of parameter configurations indexed by
// canonical name. The zero value is an empty, usable catalog.
type Catalog struct {
	params []exam.ParameterConfig
	index  map[string]int
}

// New builds a catalog from configs, migrating each one. When two configs
// share a canonical name the first is indexed; Lookup never returns the
// shadowed one.
func New(configs []exam.ParameterConfig) *Catalog {
	c := &Catalog{params: make([]exam.ParameterConfig, 0, len(configs))}
	for _, cfg := range configs {
		c.params = append(c.params, exam.Migrate(cfg))
	}
	c.reindex()
	return c
}

func (c *Catalog) reindex() {
	c.index = make(map[string]int, len(c.params))
	for i, p := range c.params {
		key := exam.Normalize(p.Name)
		if key == "" {
			continue
		}
		if _, seen := c.index[key]; !seen {
			c.index[key] = i
		}
	}
}

// Len returns the number of configurations.
func (c *Catalog) Len() int { return len(c.params) }

// All returns a copy of the configurations in catalog order.
func (c *Catalog) All() []exam.ParameterConfig {
	out := make([]exam.ParameterConfig, len(c.params))
	copy(out, c.params)
	return out
}

// Lookup finds the configuration whose canonical name equals name's.
func (c *Catalog) Lookup(name string) (exam.ParameterConfig, bool) {
	i, ok := c.position(name)
	if !ok {
		return exam.ParameterConfig{}, false
	}
	return c.params[i], true
}

// Resolve returns the configuration for name, or the unknown-parameter
// default when the catalog has none.
func (c *Catalog) Resolve(name string) exam.ParameterConfig {
	if cfg, ok := c.Lookup(name); ok {
		return cfg
	}
	return exam.Unknown(name)
}

func (c *Catalog) position(name string) (int, bool) {
	key := exam.Normalize(name)
	if key == "" || c.index == nil {
		return 0, false
	}
	i, ok := c.index[key]
	return i, ok
}

// Insert appends cfg. It fails with *DuplicateParameterError when the
// canonical name is already taken.
func (c *Catalog) Insert(cfg exam.ParameterConfig) error {
	if exam.Normalize(cfg.Name) == "" {
		return ErrEmptyName
	}
	if i, ok := c.position(cfg.Name); ok {
		return &DuplicateParameterError{Name: cfg.Name, Existing: c.params[i].Name}
	}
	c.params = append(c.params, exam.Migrate(cfg))
	c.reindex()
	return nil
}

// Rename changes a parameter's name and rewrites matching exam entries in
// reports to the new literal name. It returns the number of rewritten
// entries.
func (c *Catalog) Rename(oldName, newName string, reports []exam.Report) (int, error) {
	i, ok := c.position(oldName)
	if !ok {
		return 0, fmt.Errorf("%q: %w", oldName, ErrNotFound)
	}
	cfg := c.params[i]
	cfg.Name = newName
	return c.Update(oldName, cfg, reports)
}

// Update replaces the configuration found under oldName with cfg. When the
// literal name changes, every entry in reports whose parameter matches
// oldName is rewritten to cfg.Name. Validation happens before anything is
// modified, so either both the catalog and the reports change or neither
// does.
func (c *Catalog) Update(oldName string, cfg exam.ParameterConfig, reports []exam.Report) (int, error) {
	i, ok := c.position(oldName)
	if !ok {
		return 0, fmt.Errorf("%q: %w", oldName, ErrNotFound)
	}
	if exam.Normalize(cfg.Name) == "" {
		return 0, ErrEmptyName
	}
	if j, taken := c.position(cfg.Name); taken && j != i {
		return 0, &DuplicateParameterError{Name: cfg.Name, Existing: c.params[j].Name}
	}

	previous := c.params[i].Name
	c.params[i] = exam.Migrate(cfg)
	c.reindex()

	if cfg.Name == previous {
		return 0, nil
	}
	return cascadeRename(reports, previous, cfg.Name), nil
}

// cascadeRename points every entry matching oldName at newName.
func cascadeRename(reports []exam.Report, oldName, newName string) int {
	key := exam.Normalize(oldName)
	n := 0
	for ri := range reports {
		exams := reports[ri].Exams
		for ei := range exams {
			if exam.Normalize(exams[ei].Param) == key {
				exams[ei].Param = newName
				n++
			}
		}
	}
	return n
}

// Remove deletes the configuration for name. Historical entries are left
// alone and fall back to the unknown-parameter default.
func (c *Catalog) Remove(name string) error {
	i, ok := c.position(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	c.params = append(c.params[:i], c.params[i+1:]...)
	c.reindex()
	return nil
}

// Sorted returns the configurations ordered by display name.
func (c *Catalog) Sorted() []exam.ParameterConfig {
	out := c.All()
	sortByName(out)
	return out
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.params {
		key := strings.ToLower(p.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p.Category)
	}
	return out
}
