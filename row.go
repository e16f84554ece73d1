package csvtab

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnKey addresses one column of a table, either by zero-based index
// (positional mode) or by header name (named mode). The zero value is the
// first positional column.
type ColumnKey struct {
	name  string
	index int
	named bool
}

// Col addresses a column by header name.
func Col(name string) ColumnKey { return ColumnKey{name: name, named: true} }

// ColIndex addresses a column by zero-based index. Against a named-mode
// table it is shorthand for "the nth column" and resolves through the
// header names.
func ColIndex(i int) ColumnKey { return ColumnKey{index: i} }

// String returns the name or the decimal index.
func (k ColumnKey) String() string {
	if k.named {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// columnSet is the ordered header-name sequence of a named-mode table.
// One instance is shared read-only by every row; there is no per-row copy.
type columnSet struct {
	names []string
	index map[string]int
}

func newColumnSet(names []string) *columnSet {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return &columnSet{names: names, index: idx}
}

// resolve maps a key to a value-slice offset, reporting whether the key
// addresses a column this set has.
func (c *columnSet) resolve(k ColumnKey) (int, bool) {
	if k.named {
		i, ok := c.index[k.name]
		return i, ok
	}
	if k.index < 0 || k.index >= len(c.names) {
		return 0, false
	}
	return k.index, true
}

// Row is an ordered mapping from column key to field value. Values start
// out as strings; a filter may replace one with any scalar, and the value
// keeps whatever type the filter returned.
type Row struct {
	columns *columnSet // nil in positional mode
	values  []any
}

// Len returns the number of fields.
func (r Row) Len() int { return len(r.values) }

// Named reports whether the row is addressed by header names.
func (r Row) Named() bool { return r.columns != nil }

// Get returns the value at key. A named key against a positional row, or
// any key the row has no column for, reports false.
func (r Row) Get(key ColumnKey) (any, bool) {
	i, ok := r.offset(key)
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Set replaces the value at key, reporting whether the key resolved.
func (r Row) Set(key ColumnKey, v any) bool {
	i, ok := r.offset(key)
	if !ok {
		return false
	}
	r.values[i] = v
	return true
}

func (r Row) offset(key ColumnKey) (int, bool) {
	if r.columns != nil {
		return r.columns.resolve(key)
	}
	if key.named || key.index < 0 || key.index >= len(r.values) {
		return 0, false
	}
	return key.index, true
}

// Values returns the row's backing value slice in column order. Mutating
// it mutates the row.
func (r Row) Values() []any { return r.values }

// Columns returns the shared header names, or nil in positional mode.
func (r Row) Columns() []string {
	if r.columns == nil {
		return nil
	}
	return r.columns.names
}

// Strings returns every value rendered as a string.
func (r Row) Strings() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = stringify(v)
	}
	return out
}

// clone returns a row with its own value slice. The column set stays
// shared; only the values are copied.
func (r Row) clone() Row {
	vals := make([]any, len(r.values))
	copy(vals, r.values)
	return Row{columns: r.columns, values: vals}
}

// empty reports whether the row qualifies for sweeping: zero fields, or
// every value empty after trimming. Only genuinely empty values count;
// numeric zeros and other non-string scalars never do.
func (r Row) empty() bool {
	for _, v := range r.values {
		if !emptyValue(v) {
			return false
		}
	}
	return true
}

func emptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func toValues(fields []string) []any {
	vals := make([]any, len(fields))
	for i, f := range fields {
		vals[i] = f
	}
	return vals
}
