// Package csvtab loads delimited-text files into an in-memory table,
// runs an ordered chain of transformation callbacks over cells or whole
// rows, and re-serializes the result.
//
// The central type is [Table], created with [Open] or the cached
// [GetInstance]. A table is memory-resident: [Table.Parse] reads the whole
// source at once, decodes it field-by-field according to a [Format]
// (delimiter, quote, escape), and stores rows keyed by parse order.
//
// # Column Modes
//
// Column identity is resolved exactly once, on the first parse, and never
// changes for that table:
//
//   - Positional mode (default): fields are addressed by zero-based index.
//   - Named mode: call [Table.FetchColumns] before parsing to consume the
//     first physical row as a header. Every row then shares one read-only
//     column-name sequence.
//
// Keys are built with [Col] and [ColIndex]. A positional key used against a
// named-mode table is shorthand for "the nth column" and resolves through
// the header names.
//
// # Filters
//
// [Table.Filter] registers a callback against one column,
// [Table.FilterRows] against whole rows. Filters run in registration order
// and compose sequentially: each filter's output is the next filter's
// input for the same row. The chain is consumed by the next parse or
// serialize call and then emptied, unless [Table.PersistFilters] is
// enabled. A cell value starts as a string and becomes whatever the filter
// returned; no further type constraint is enforced.
//
//	t, _ := csvtab.Open("hits.csv")
//	t.FetchColumns()
//	t.Filter(csvtab.Col("Hits"), csvtab.ToInt)
//	out, _ := t.JSON()
//
// # Empty Rows
//
// Rows whose fields are all empty after trimming can be removed. In
// large-file mode (sources over [FlushThreshold] bytes, or
// [WithLargeFileMode]) they are dropped inline during the parse/filter
// pass. Otherwise call [Table.SweepEmptyRows] explicitly. Removal is
// permanent and leaves a hole: indices are never reused or reflowed.
//
// # Serialization
//
// [Table.DelimitedText] re-renders the table under its format, prepending
// the header row in named mode. A field is quoted if and only if it
// contains the delimiter, the quote character, or whitespace, with
// internal quotes doubled; text written this way re-reads identically
// under the same format. [Table.JSON] and [Table.YAML] produce an array of
// ordered objects in named mode or an array of arrays in positional mode.
// [Table.Markdown] and [Table.Preview] render pipe tables and aligned text
// tables for humans. [Table.Save] writes the delimited text back to disk,
// defaulting to the original source path.
//
// # Instance Cache
//
// [Cache] maps resolved absolute paths to already-constructed tables so
// repeated requests for one path share one instance. [GetInstance] uses a
// package-level cache. Entries are never evicted and never invalidated by
// on-disk changes; that staleness is accepted policy.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnreadableFile] — the source path cannot be resolved to a
//     readable file
//   - [ErrInvalidFilter] — a nil filter callback
//   - [ErrFieldCount] — a named-mode row does not match the header width
//   - [ErrUnwritableTarget] — a save or bundle target cannot be written
//
// All errors are synchronous and nothing is retried. A failed parse leaves
// the table unparsed; calling [Table.Parse] again after fixing the
// underlying condition works normally.
package csvtab
