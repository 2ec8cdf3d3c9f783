package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/davetashner/labtrack/internal/analysis"
)

// ReportJSON is the top-level JSON structure for --format json output.
type ReportJSON struct {
	Generated string            `json:"generated"`
	Summary   *analysis.Summary `json:"summary"`
	Sections  []SectionJSON     `json:"sections,omitempty"`
}

// SectionJSON is the JSON representation of a single report section.
type SectionJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`            // "ok", "skipped"
	Content     string `json:"content,omitempty"` // rendered text
}

// Render runs the named sections against in and writes them to w. Sections
// with nothing to show print a short notice instead.
func Render(w io.Writer, in *Input, sections []string) error {
	for _, name := range ResolveSections(sections) {
		sec := Get(name)
		if err := sec.Analyze(in); err != nil {
			if errors.Is(err, ErrNoData) {
				slog.Debug("section skipped", "section", name, "reason", err)
				_, _ = fmt.Fprintf(w, "%s\n  %s\n\n", SectionTitle(sec.Description()), colorFaint.Sprint("Nothing to show yet."))
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}
		if err := sec.Render(w); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
	}
	return nil
}

// RenderJSON writes the dashboard summary and the rendered sections as
// machine-readable JSON.
func RenderJSON(w io.Writer, in *Input, sections []string, now time.Time) error {
	out := ReportJSON{
		Generated: now.Format(time.RFC3339),
		Summary:   in.Summary(),
	}

	for _, name := range ResolveSections(sections) {
		sec := Get(name)
		sj := SectionJSON{
			Name:        sec.Name(),
			Description: sec.Description(),
		}
		if err := sec.Analyze(in); err != nil {
			if errors.Is(err, ErrNoData) {
				sj.Status = "skipped"
				out.Sections = append(out.Sections, sj)
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}

		sj.Status = "ok"
		var buf bytes.Buffer
		if err := sec.Render(&buf); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
		sj.Content = buf.String()
		out.Sections = append(out.Sections, sj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ResolveSections determines which registered sections to run. If filter
// is empty, DefaultSections are used. Unknown names are dropped.
func ResolveSections(filter []string) []string {
	if len(filter) == 0 {
		filter = DefaultSections
	}

	available := make(map[string]bool)
	for _, name := range List() {
		available[name] = true
	}

	var names []string
	for _, name := range filter {
		if available[name] {
			names = append(names, name)
		}
	}
	return names
}
