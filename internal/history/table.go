// Package history summarizes archived stopwatch runs.
package history

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

type column struct {
	title string
	right bool
}

// runTable collects cells and lays them out in aligned columns under a
// header and a dashed rule.
type runTable struct {
	cols []column
	rows [][]string
}

func newRunTable(cols ...column) *runTable {
	return &runTable{cols: cols}
}

// addRow appends a row. Missing cells render blank; extra cells are dropped.
func (t *runTable) addRow(cells ...string) {
	row := make([]string, len(t.cols))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *runTable) widths() []int {
	widths := make([]int, len(t.cols))
	for i, col := range t.cols {
		widths[i] = runewidth.StringWidth(col.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func (t *runTable) lines() []string {
	if len(t.cols) == 0 {
		return nil
	}
	widths := t.widths()
	titles := make([]string, len(t.cols))
	rules := make([]string, len(t.cols))
	for i, col := range t.cols {
		titles[i] = col.title
		rules[i] = strings.Repeat("-", widths[i])
	}
	out := make([]string, 0, len(t.rows)+2)
	out = append(out, t.join(titles, widths), t.join(rules, widths))
	for _, row := range t.rows {
		out = append(out, t.join(row, widths))
	}
	return out
}

func (t *runTable) join(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if t.cols[i].right {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, columnGap), " ")
}
