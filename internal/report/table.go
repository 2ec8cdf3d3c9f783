package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string. If nil, no color is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc // optional per-cell color function
}

// Cell is a pre-styled value. Text is used for width; Styled is printed.
type Cell struct {
	Text   string
	Styled string
}

// Styled pairs a raw value with its colored rendering.
func Styled(text, styled string) Cell {
	return Cell{Text: text, Styled: styled}
}

// Table renders aligned text tables to an io.Writer.
type Table struct {
	columns []Column
	rows    [][]string
	styled  [][]string
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Values beyond the column count are silently ignored;
// missing values are treated as empty strings.
func (t *Table) AddRow(values ...string) {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Text: v}
	}
	t.AddCells(cells...)
}

// AddCells appends a row of cells that may carry their own styling, which
// takes precedence over the column's color function.
func (t *Table) AddCells(cells ...Cell) {
	row := make([]string, len(t.columns))
	styled := make([]string, len(t.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i].Text
			styled[i] = cells[i].Styled
		}
	}
	t.rows = append(t.rows, row)
	t.styled = append(t.styled, styled)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// width counts runes so units such as "µL" and sparkline glyphs align.
func width(s string) int { return utf8.RuneCountInString(s) }

// Render writes the table to w with computed column widths.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = width(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], width(cell))
		}
	}

	if err := t.renderHeader(w, widths); err != nil {
		return err
	}

	parts := make([]string, len(t.columns))
	for i, wd := range widths {
		parts[i] = strings.Repeat("-", wd)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	for i, row := range t.rows {
		if err := t.renderRow(w, row, t.styled[i], widths); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) renderHeader(w io.Writer, widths []int) error {
	bold := color.New(color.Bold)
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = pad(bold.Sprint(col.Header), widths[i]-width(col.Header), col.Align)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func (t *Table) renderRow(w io.Writer, values, styled []string, widths []int) error {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := values[i]
		display := val
		switch {
		case styled[i] != "":
			display = styled[i]
		case col.Color != nil && val != "":
			display = col.Color(val)
		}
		// Padding is based on the raw value, not the ANSI-colored one.
		parts[i] = pad(display, widths[i]-width(val), col.Align)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func pad(s string, n int, align Alignment) string {
	if n <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
