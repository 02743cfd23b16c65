package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a column-aligned text table. Widths are measured as displayed,
// so cells may carry lipgloss styling.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // 0 or absent means unlimited
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth truncates cells of column col to width, keeping the tail
// so file names stay visible.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	for i, c := range cells {
		if w := t.maxWidths[i]; w > 0 {
			cells[i] = truncateLeft(c, w)
		}
	}
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render formats the table with a styled header and a separator line.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder

	header := make([]string, len(t.headers))
	sep := make([]string, len(t.headers))
	for i, h := range t.headers {
		header[i] = headerStyle.Render(padRight(h, widths[i]))
		sep[i] = dimStyle.Render(strings.Repeat("-", widths[i]))
	}
	writeLine(&b, header, gap)
	writeLine(&b, sep, gap)

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = padRight(c, widths[i])
		}
		writeLine(&b, cells, gap)
	}

	return b.String()
}

func writeLine(b *strings.Builder, cells []string, gap string) {
	b.WriteString(strings.TrimRight(strings.Join(cells, gap), " "))
	b.WriteString("\n")
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// truncateLeft shortens plain text to width runes, replacing the dropped
// prefix with "...".
func truncateLeft(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[len(r)-width:])
	}
	return "..." + string(r[len(r)-(width-3):])
}
