package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Column defines a table column. Right aligns numeric columns such as token
// ids, latencies and block numbers.
type Column struct {
	Title string
	Width int
	Right bool
}

// Row is a slice of cell values. Cells may already carry styling.
type Row []string

// Table renders a lipgloss-styled table for the CLI listings.
type Table struct {
	Columns []Column
	Rows    []Row
}

// NewTable creates a new table.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// Render returns the full table as a string. Widths are measured on the
// visible text, so pre-styled cells line up with plain ones.
func (t *Table) Render() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)

	line := func(cells []string) {
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		sb.WriteString("\n")
	}

	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = headerStyle.Render(fit(col.Title, col))
	}
	line(cells)

	for i, col := range t.Columns {
		cells[i] = StyleDim.Render(strings.Repeat("-", col.Width))
	}
	line(cells)

	for _, row := range t.Rows {
		for j, col := range t.Columns {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			cells[j] = cellStyle.Render(fit(val, col))
		}
		line(cells)
	}
	return sb.String()
}

// fit pads or truncates s to exactly col.Width visible cells.
func fit(s string, col Column) string {
	if ansi.StringWidth(s) > col.Width {
		s = ansi.Truncate(s, col.Width, "…")
	}
	gap := strings.Repeat(" ", max(col.Width-ansi.StringWidth(s), 0))
	if col.Right {
		return gap + s
	}
	return s + gap
}

// KeyValueBlock renders a set of key-value pairs in a bordered box.
func KeyValueBlock(title string, pairs [][2]string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fmt.Sprintf("%-20s", p[0]+":"))
		val := StyleValue.Render(p[1])
		sb.WriteString("  " + key + " " + val + "\n")
	}
	return StyleBorder.Render(sb.String())
}
