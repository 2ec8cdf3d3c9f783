// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package report provides a pluggable section registry for the terminal
// dashboard. Each section analyzes the Book and renders one focused block.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/store"
)

// ErrNoData indicates a section has nothing to show, typically because no
// reports or no parameters exist yet.
var ErrNoData = errors.New("no data")

// Input is what every section analyzes.
type Input struct {
	Book    *store.Book
	Options analysis.Options

	summary *analysis.Summary
}

// Summary returns the dashboard summary, computing it once per Input.
func (in *Input) Summary() *analysis.Summary {
	if in.summary == nil {
		in.summary = analysis.Dashboard(in.Book, in.Options)
	}
	return in.summary
}

// Section is a pluggable report section.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "anomalies").
	Name() string

	// Description returns a human-readable description of what this section reports.
	Description() string

	// Analyze prepares internal state for rendering. Returns ErrNoData
	// (wrapped) when there is nothing to show.
	Analyze(in *Input) error

	// Render writes the section output to w.
	Render(w io.Writer) error
}

// DefaultSections are the sections shown by the dashboard.
var DefaultSections = []string{"overview", "metrics", "anomalies"}

var (
	mu       sync.RWMutex
	registry = make(map[string]Section)
	order    []string // insertion order for deterministic listing
)

// Register adds a section to the global registry.
// It panics if a section with the same name is already registered.
func Register(s Section) {
	mu.Lock()
	defer mu.Unlock()
	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("report section already registered: %s", name))
	}
	registry[name] = s
	order = append(order, name)
}

// Get returns the section with the given name, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered sections in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Section)
	order = nil
}
