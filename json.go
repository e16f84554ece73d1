package csvtab

import (
	"encoding/json"
	"strings"
)

// JSON renders the table as a compact JSON array, parsing first if
// needed: an array of objects in named mode, with keys in header order,
// or an array of arrays in positional mode.
func (t *Table) JSON() (string, error) {
	if err := t.Parse(); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, idx := range t.order {
		if i > 0 {
			sb.WriteByte(',')
		}
		if err := writeJSONRow(&sb, t.rows[idx]); err != nil {
			return "", err
		}
	}
	sb.WriteByte(']')
	return sb.String(), nil
}

// writeJSONRow encodes one row. encoding/json maps do not preserve order,
// so named-mode objects are assembled key by key against the shared
// column sequence.
func writeJSONRow(sb *strings.Builder, row Row) error {
	if !row.Named() {
		b, err := json.Marshal(row.Values())
		if err != nil {
			return err
		}
		sb.Write(b)
		return nil
	}
	sb.WriteByte('{')
	for i, name := range row.Columns() {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(row.Values()[i])
		if err != nil {
			return err
		}
		sb.Write(key)
		sb.WriteByte(':')
		sb.Write(val)
	}
	sb.WriteByte('}')
	return nil
}
