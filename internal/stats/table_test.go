package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Door", "Rewards", "Share"}
	rows := [][]string{
		{"1", "12", "40.0%"},
		{"10", "3", "5.0%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Door Rewards Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "1         12 40.0%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10         3  5.0%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
