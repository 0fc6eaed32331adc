package history

import "testing"

func TestRunTableAlignsColumns(t *testing.T) {
	tbl := newRunTable(
		column{title: "#", right: true},
		column{title: "Elapsed"},
		column{title: "Laps", right: true},
	)
	tbl.addRow("1", "00:00:01:500", "2")
	tbl.addRow("12", "00:01:00:000", "10")

	want := []string{
		" #  Elapsed       Laps",
		"--  ------------  ----",
		" 1  00:00:01:500     2",
		"12  00:01:00:000    10",
	}
	got := tbl.lines()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunTableShortRowsPadBlank(t *testing.T) {
	tbl := newRunTable(column{title: "Ended"}, column{title: "Best lap"})
	tbl.addRow("2024-05-01 12:00")
	got := tbl.lines()
	if got[2] != "2024-05-01 12:00" {
		t.Fatalf("unexpected row: %q", got[2])
	}
}

func TestRunTableNoColumns(t *testing.T) {
	if lines := newRunTable().lines(); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
