// Package output defines the Formatter interface for exporting the lab
// book in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/store"
)

// Export is everything a formatter may draw on.
type Export struct {
	Book    *store.Book
	Options analysis.Options
	Now     time.Time
}

// Formatter writes an export to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "json", "csv", "markdown").
	Name() string

	// Format writes the export to w.
	Format(ex Export, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// FormatNames returns the registered format names, sorted.
func FormatNames() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return sortedNames()
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

// sortedNames lists the registry keys. Callers must hold fmtMu.
func sortedNames() []string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatNames() string {
	return strings.Join(sortedNames(), ", ")
}
