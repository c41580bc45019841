package cli

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"ID", "Hex", "Count"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"ID", "Hex"})

	table.AddRow([]string{"A", "#FF0000"})
	table.AddRow([]string{"B"})
	table.AddRow([]string{"C", "#00FF00", "extra"})

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d columns, want 2", i, len(row))
		}
	}
	if table.rows[1][1] != "" {
		t.Errorf("Expected empty string for padded column, got %q", table.rows[1][1])
	}
	if table.rows[2][1] != "#00FF00" {
		t.Errorf("Expected truncated row to keep leading cells, got %v", table.rows[2])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"ID", "Name", "Count"})
	table.AddRow([]string{"A", "firebrick", "10"})
	table.AddRow([]string{"B", "navy", "2"})

	want := "" +
		"ID  Name       Count\n" +
		"--  ---------  -----\n" +
		"A   firebrick  10   \n" +
		"B   navy       2    \n"

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	table := &Table{padding: 2}
	if output := table.Render(); output != "" {
		t.Errorf("Expected empty string for empty table, got: %q", output)
	}
}

func TestTableRenderNoRows(t *testing.T) {
	table := NewTable([]string{"Column1", "Column2"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and separator lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Column1") {
		t.Error("Output should contain headers even without rows")
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("Expected separator line with dashes, got: %q", lines[1])
	}
}

func TestTableIgnoresANSIWidth(t *testing.T) {
	block := "\033[48;2;255;0;0m  A   \033[0m"

	table := NewTable([]string{"Colour", "ID"})
	table.AddRow([]string{block, "A"})
	table.AddRow([]string{"plain", "B"})

	lines := strings.Split(table.Render(), "\n")
	if got := visibleWidth(lines[2]); got != visibleWidth(lines[0]) {
		t.Errorf("row with escapes is %d columns wide, header is %d", got, visibleWidth(lines[0]))
	}
	if !strings.Contains(lines[2], block) {
		t.Error("escape sequences should be kept intact")
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abc", 3},
		{"→ →", 3},
		{"\033[48;2;1;2;3m    \033[0m", 4},
		{"\033[38;2;0;0;0mid\033[0m", 2},
	}

	for _, tt := range tests {
		if got := visibleWidth(tt.input); got != tt.want {
			t.Errorf("visibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
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
		{"\033[0mx", 3, "\033[0mx  "},
	}

	for _, tt := range tests {
		result := padRight(tt.input, tt.width)
		if result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}
