package csvtab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Markdown renders the table as a GitHub-flavored Markdown pipe table,
// parsing first if needed. Named mode uses the header names; positional
// mode uses the column indices as headers.
func (t *Table) Markdown() (string, error) {
	if err := t.Parse(); err != nil {
		return "", err
	}
	header, rows := t.cells()
	widths := cellWidths(header, rows)
	// Minimum 3 so the separator row stays well-formed.
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var sb strings.Builder
	writeMarkdownRow(&sb, header, widths)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	fmt.Fprintf(&sb, "| %s |\n", strings.Join(sep, " | "))
	for _, row := range rows {
		writeMarkdownRow(&sb, row, widths)
	}
	return sb.String(), nil
}

func writeMarkdownRow(sb *strings.Builder, cells []string, widths []int) {
	padded := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = padCell(cell, w)
	}
	fmt.Fprintf(sb, "| %s |\n", strings.Join(padded, " | "))
}

// cells returns the header and the surviving rows as strings. Positional
// tables get index headers sized to the widest row.
func (t *Table) cells() (header []string, rows [][]string) {
	rows = make([][]string, 0, len(t.order))
	numCols := 0
	for _, idx := range t.order {
		row := t.rows[idx].Strings()
		if len(row) > numCols {
			numCols = len(row)
		}
		rows = append(rows, row)
	}
	if t.columns != nil {
		return t.columns.names, rows
	}
	header = make([]string, numCols)
	for i := range header {
		header[i] = strconv.Itoa(i)
	}
	return header, rows
}

func cellWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func padCell(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
