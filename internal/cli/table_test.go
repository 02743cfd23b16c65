package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Name", "Age"})

	table.AddRow([]string{"Alice", "30"})
	table.AddRow([]string{"Bob"})
	table.AddRow([]string{"Charlie", "25", "Extra"})

	if table.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Len())
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row to be truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"FILE", "PURPOSE"})
	table.AddRow([]string{"out/favicon.ico", "favicon"})
	table.AddRow([]string{"out/apple-touch-icon.png", "apple-touch-icon"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header, separator and 2 rows, got %d lines:\n%s", len(lines), strings.Join(lines, "\n"))
	}

	if !strings.HasPrefix(lines[1], strings.Repeat("-", len("out/apple-touch-icon.png"))) {
		t.Errorf("Separator should span the widest cell, got %q", lines[1])
	}

	// The second column starts after the widest first cell plus padding.
	if col := strings.LastIndex(lines[2], "favicon"); col != len("out/apple-touch-icon.png")+2 {
		t.Errorf("Second column at %d, want %d", col, len("out/apple-touch-icon.png")+2)
	}
	if strings.HasSuffix(lines[2], " ") {
		t.Errorf("Rows should not carry trailing spaces: %q", lines[2])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Expected empty string for table without headers, got %q", got)
	}

	out := NewTable([]string{"Column1", "Column2"}).Render()
	if !strings.Contains(out, "Column1") || strings.Count(out, "\n") != 2 {
		t.Errorf("Expected header and separator only, got %q", out)
	}
}

func TestTableStyledCellsAlign(t *testing.T) {
	table := NewTable([]string{"", "FILE"})
	table.AddRow([]string{okStyle.Render("✓"), "a.png"})
	table.AddRow([]string{errStyle.Render("✗"), "b.png"})

	lines := strings.Split(table.Render(), "\n")
	for _, line := range lines[2:4] {
		if w := lipgloss.Width(line); w != 1+2+len("a.png") {
			t.Errorf("Row %q has display width %d", line, w)
		}
	}
}

func TestTableColumnMaxWidth(t *testing.T) {
	table := NewTable([]string{"PATH"})
	table.SetColumnMaxWidth(0, 10)
	table.AddRow([]string{"public/images/icons/favicon.ico"})

	if got := table.rows[0][0]; got != "...con.ico" {
		t.Errorf("Truncated cell = %q, want %q", got, "...con.ico")
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"abcdefghijkl", 8, "...hijkl"},
		{"abcdef", 2, "ef"},
		{"→→→→→→", 4, "...→"},
	}

	for _, tt := range tests {
		if got := truncateLeft(tt.input, tt.width); got != tt.want {
			t.Errorf("truncateLeft(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"é", 3, "é  "},
	}

	for _, tt := range tests {
		if result := padRight(tt.input, tt.width); result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}
