package csvtab

import (
	"fmt"
	"iter"
	"os"
	"runtime"
	"slices"
)

// Table is the in-memory row store for one delimited-text source. It moves
// from unparsed to parsed on the first [Table.Parse] (any serializing call
// triggers that implicitly) and stays usable for the process lifetime.
// A Table is not safe for concurrent use.
type Table struct {
	path       string
	format     Format
	searchPath string
	resolve    bool
	largeFile  bool
	largeSet   bool
	eagerGC    bool

	fetchColumns bool
	parsed       bool
	columns      *columnSet // nil while unparsed or in positional mode
	rows         map[int]Row
	order        []int // surviving indices in parse order
	chain        filterChain
	reads        int // physical source reads, for idempotence checks
}

// Path returns the resolved source path.
func (t *Table) Path() string { return t.path }

// Format returns the table's delimiter/quote/escape triple.
func (t *Table) Format() Format { return t.format }

// Named reports whether the table parsed in named mode. False until the
// first parse settles the mode.
func (t *Table) Named() bool { return t.columns != nil }

// Columns returns the header names in named mode, nil otherwise.
func (t *Table) Columns() []string {
	if t.columns == nil {
		return nil
	}
	return t.columns.names
}

// Len returns the number of surviving rows. Zero before the first parse.
func (t *Table) Len() int { return len(t.order) }

// FetchColumns requests named mode: the first physical row of the source
// becomes the shared header instead of data. It must be called before the
// first parse; once the column mode is settled it is ignored.
func (t *Table) FetchColumns() {
	if t.parsed {
		return
	}
	t.fetchColumns = true
}

// Filter registers a column filter. The callback receives the cell's
// current value plus args and its return value replaces that cell only.
// A positional key against a named-mode table resolves through the header
// names, immediately if they are already known.
func (t *Table) Filter(key ColumnKey, fn ColumnFunc, args ...any) error {
	if t.columns != nil && !key.named {
		if idx, ok := t.columns.resolve(key); ok {
			key = Col(t.columns.names[idx])
		}
	}
	return t.chain.addColumn(key, fn, args)
}

// FilterRows registers a whole-row filter. The callback receives the
// entire row and must return the replacement row.
func (t *Table) FilterRows(fn RowFunc, args ...any) error {
	return t.chain.addRow(fn, args)
}

// FlushFilters clears all registered filters. No-op while persistence is
// enabled.
func (t *Table) FlushFilters() { t.chain.flush() }

// PersistFilters controls whether the chain survives application passes
// and [Table.FlushFilters] calls. Disable it and flush explicitly to
// empty a persistent chain.
func (t *Table) PersistFilters(on bool) { t.chain.persist = on }

// Parse reads and decodes the source. The first call settles the column
// mode and populates the row store; later calls with no pending filters
// are no-ops that do not re-read the file. Pending filters are applied to
// the stored rows (also without re-reading) and the chain is flushed
// unless persistent. A failed parse leaves the table unparsed and
// retryable.
func (t *Table) Parse() error {
	if t.parsed {
		if !t.chain.pending() {
			return nil
		}
		return t.refilter()
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	t.reads++

	r := newReader(data, t.format)
	first, ok := r.next()
	if !ok {
		// Empty source: parsed, positional, no rows.
		t.rows = map[int]Row{}
		t.parsed = true
		t.chain.flush()
		return nil
	}

	var cols *columnSet
	if t.fetchColumns {
		// Header values may themselves need transformation, but only
		// row filters run here: a column filter's positional key is
		// shorthand for a data column, unresolved until the header is
		// frozen, so it must not fire on the header cells.
		hdr, err := t.chain.applyRowFilters(Row{values: toValues(first)})
		if err != nil {
			return fmt.Errorf("header filter: %w", err)
		}
		cols = newColumnSet(hdr.Strings())
		t.chain.resolve(cols)
	} else {
		r.rewind()
	}

	rows := make(map[int]Row)
	var order []int
	next := 0
	for fields := range r.rows() {
		row, err := t.buildRow(cols, fields, next)
		if err != nil {
			return err
		}
		row, err = t.chain.apply(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", next, err)
		}
		idx := next
		next++
		if t.largeFile && row.empty() {
			continue // inline sweep: the index becomes a permanent hole
		}
		rows[idx] = row
		order = append(order, idx)
	}

	t.columns = cols
	t.rows = rows
	t.order = order
	t.parsed = true
	t.chain.flush()
	if t.eagerGC && t.largeFile {
		runtime.GC()
	}
	return nil
}

// buildRow constructs one data row. In named mode a non-empty row must
// match the header width; empty rows are exempt (they exist only to be
// swept) and are padded to shape.
func (t *Table) buildRow(cols *columnSet, fields []string, idx int) (Row, error) {
	if cols == nil {
		return Row{values: toValues(fields)}, nil
	}
	vals := toValues(fields)
	if len(fields) != len(cols.names) {
		if !allBlank(fields) {
			return Row{}, fmt.Errorf("%w: row %d has %d fields, header has %d",
				ErrFieldCount, idx, len(fields), len(cols.names))
		}
		padded := make([]any, len(cols.names))
		for i := range padded {
			padded[i] = ""
		}
		copy(padded, vals[:min(len(vals), len(padded))])
		vals = padded
	}
	return Row{columns: cols, values: vals}, nil
}

func allBlank(fields []string) bool {
	for _, f := range fields {
		if !emptyValue(f) {
			return false
		}
	}
	return true
}

// refilter applies the pending chain to the stored rows in index order,
// sweeping inline in large-file mode. Like the first parse, the pass
// stages into fresh storage and commits only on success: a filter error
// mid-pass leaves the store untouched. Rows are cloned first because
// column filters write through the shared value slice.
func (t *Table) refilter() error {
	staged := make(map[int]Row, len(t.order))
	var order []int
	for _, idx := range t.order {
		row, err := t.chain.apply(t.rows[idx].clone())
		if err != nil {
			return fmt.Errorf("row %d: %w", idx, err)
		}
		if t.largeFile && row.empty() {
			continue
		}
		staged[idx] = row
		order = append(order, idx)
	}
	t.rows = staged
	t.order = order
	t.chain.flush()
	return nil
}

// SweepEmptyRows removes every empty row from the store in one dedicated
// traversal, parsing first if needed. Removal is monotonic: an index never
// comes back and the surviving indices are unchanged.
func (t *Table) SweepEmptyRows() error {
	if err := t.Parse(); err != nil {
		return err
	}
	for _, idx := range slices.Clone(t.order) {
		if t.rows[idx].empty() {
			t.remove(idx)
		}
	}
	return nil
}

func (t *Table) remove(idx int) {
	delete(t.rows, idx)
	if i := slices.Index(t.order, idx); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
}

// Records returns the surviving rows in index order, parsing first if
// needed.
func (t *Table) Records() ([]Row, error) {
	if err := t.Parse(); err != nil {
		return nil, err
	}
	out := make([]Row, 0, len(t.order))
	for _, idx := range t.order {
		out = append(out, t.rows[idx])
	}
	return out, nil
}

// Row returns the row at a parse-order index. A removed index reports
// false forever.
func (t *Table) Row(idx int) (Row, bool) {
	r, ok := t.rows[idx]
	return r, ok
}

// All yields the surviving rows with their parse-order indices, parsing
// first if needed. A parse failure yields nothing; use [Table.Records]
// when the error matters.
func (t *Table) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		if err := t.Parse(); err != nil {
			return
		}
		for _, idx := range t.order {
			if !yield(idx, t.rows[idx]) {
				return
			}
		}
	}
}
