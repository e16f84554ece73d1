package csvtab

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// DelimitedText re-renders the table as delimited text under its format,
// parsing first if needed. The header row comes first in named mode. Rows
// are terminated with a newline.
func (t *Table) DelimitedText() (string, error) {
	if err := t.Parse(); err != nil {
		return "", err
	}
	var sb strings.Builder
	if t.columns != nil {
		writeDelimitedRow(&sb, t.columns.names, t.format)
	}
	for _, idx := range t.order {
		writeDelimitedRow(&sb, t.rows[idx].Strings(), t.format)
	}
	return sb.String(), nil
}

// Save writes the delimited text to path, defaulting to the original
// source path. An unwritable target is an [ErrUnwritableTarget].
func (t *Table) Save(path ...string) error {
	target := t.path
	if len(path) > 0 && path[0] != "" {
		target = path[0]
	}
	text, err := t.DelimitedText()
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrUnwritableTarget, err)
	}
	return nil
}

func writeDelimitedRow(sb *strings.Builder, fields []string, f Format) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(f.Delimiter)
		}
		writeDelimitedField(sb, field, f)
	}
	sb.WriteByte('\n')
}

// writeDelimitedField quotes the field, doubling internal quotes, if and
// only if it contains the delimiter, the quote character, or whitespace.
// Inside quotes the escape byte is active on the read side, so a literal
// escape byte is written doubled as well; both forms re-read identically.
func writeDelimitedField(sb *strings.Builder, field string, f Format) {
	if !fieldNeedsQuote(field, f) {
		sb.WriteString(field)
		return
	}
	sb.WriteByte(f.Quote)
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case f.Quote:
			sb.WriteByte(f.Quote)
		case f.Escape:
			sb.WriteByte(f.Escape)
		}
		sb.WriteByte(field[i])
	}
	sb.WriteByte(f.Quote)
}

func fieldNeedsQuote(field string, f Format) bool {
	for _, r := range field {
		if r == rune(f.Delimiter) || r == rune(f.Quote) || unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
