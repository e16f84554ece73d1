package csvtab

import (
	"fmt"
	"io"
	"strings"
)

// Preview writes a bordered, width-aligned text rendering of the table to
// w, parsing first if needed. It is a debugging aid, not a serialization
// format: the output does not round-trip.
func (t *Table) Preview(w io.Writer) error {
	if err := t.Parse(); err != nil {
		return err
	}
	header, rows := t.cells()
	widths := cellWidths(header, rows)

	if err := previewLine(w, widths, "╭", "┬", "╮"); err != nil {
		return err
	}
	if err := previewRow(w, header, widths); err != nil {
		return err
	}
	if err := previewLine(w, widths, "├", "┼", "┤"); err != nil {
		return err
	}
	for _, row := range rows {
		if err := previewRow(w, row, widths); err != nil {
			return err
		}
	}
	return previewLine(w, widths, "╰", "┴", "╯")
}

func previewLine(w io.Writer, widths []int, left, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func previewRow(w io.Writer, cells []string, widths []int) error {
	var sb strings.Builder
	sb.WriteString("│")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(padCell(cell, width))
		sb.WriteString(" │")
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}
