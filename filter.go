package csvtab

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnFunc transforms a single cell value. It receives the current value
// plus the extra arguments bound at registration and returns the
// replacement value. An error aborts the current pass and propagates to
// the caller; the chain never retries or swallows it.
type ColumnFunc func(v any, args ...any) (any, error)

// RowFunc transforms a whole row and returns the replacement row. The same
// shape is expected but not enforced.
type RowFunc func(r Row, args ...any) (Row, error)

// filter is one registered (target, callback, extra-arguments) triple.
// Exactly one of row and col is set.
type filter struct {
	key  ColumnKey
	col  ColumnFunc
	row  RowFunc
	args []any
}

// filterChain holds filters in registration order. Application is
// sequential composition: each filter's output is the next filter's input
// for the same row.
type filterChain struct {
	filters []filter
	persist bool
}

func (c *filterChain) addColumn(key ColumnKey, fn ColumnFunc, args []any) error {
	if fn == nil {
		return fmt.Errorf("%w: nil column callback", ErrInvalidFilter)
	}
	c.filters = append(c.filters, filter{key: key, col: fn, args: args})
	return nil
}

func (c *filterChain) addRow(fn RowFunc, args []any) error {
	if fn == nil {
		return fmt.Errorf("%w: nil row callback", ErrInvalidFilter)
	}
	c.filters = append(c.filters, filter{row: fn, args: args})
	return nil
}

// resolve rewrites positional column targets through the header names.
// Called once, when the column mode settles on named.
func (c *filterChain) resolve(cols *columnSet) {
	for i, f := range c.filters {
		if f.col == nil || f.key.named {
			continue
		}
		if idx, ok := cols.resolve(f.key); ok {
			c.filters[i].key = Col(cols.names[idx])
		}
	}
}

// apply runs every filter in registration order against row. A column
// filter whose target the row lacks is skipped.
func (c *filterChain) apply(row Row) (Row, error) {
	for _, f := range c.filters {
		if f.row != nil {
			next, err := f.row(row, f.args...)
			if err != nil {
				return row, err
			}
			row = next
			continue
		}
		v, ok := row.Get(f.key)
		if !ok {
			continue
		}
		next, err := f.col(v, f.args...)
		if err != nil {
			return row, fmt.Errorf("column %s: %w", f.key, err)
		}
		row.Set(f.key, next)
	}
	return row, nil
}

// applyRowFilters runs only the whole-row filters, in registration order.
// The header pass uses this: column filters are excluded because a
// positional target is shorthand for a data column, not a header cell.
func (c *filterChain) applyRowFilters(row Row) (Row, error) {
	for _, f := range c.filters {
		if f.row == nil {
			continue
		}
		next, err := f.row(row, f.args...)
		if err != nil {
			return row, err
		}
		row = next
	}
	return row, nil
}

func (c *filterChain) pending() bool { return len(c.filters) > 0 }

// flush empties the chain unless persistence is enabled.
func (c *filterChain) flush() {
	if c.persist {
		return
	}
	c.filters = nil
}

// --- Stock column filters ---

// ToInt parses the cell's string form as a base-10 integer.
func ToInt(v any, _ ...any) (any, error) {
	return strconv.Atoi(strings.TrimSpace(stringify(v)))
}

// ToFloat parses the cell's string form as a float64.
func ToFloat(v any, _ ...any) (any, error) {
	return strconv.ParseFloat(strings.TrimSpace(stringify(v)), 64)
}

// TrimSpace trims leading and trailing whitespace from the cell's string
// form.
func TrimSpace(v any, _ ...any) (any, error) {
	return strings.TrimSpace(stringify(v)), nil
}

// Sprintf formats the cell through the verb given as the first extra
// argument, e.g. Filter(key, Sprintf, "%05v").
func Sprintf(v any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: Sprintf needs a format argument", ErrInvalidFilter)
	}
	verb, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: Sprintf format must be a string, got %T", ErrInvalidFilter, args[0])
	}
	return fmt.Sprintf(verb, v), nil
}
