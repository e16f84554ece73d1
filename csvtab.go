package csvtab

import (
	"errors"
	"os"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnreadableFile   = errors.New("unreadable file")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrFieldCount       = errors.New("field count mismatch")
	ErrUnwritableTarget = errors.New("unwritable target")
)

// FlushThreshold is the source size in bytes beyond which a table defaults
// to large-file mode: empty rows are swept inline during the parse pass
// instead of waiting for an explicit sweep.
const FlushThreshold = 1_000_000

// Format is the delimiter/quote/escape triple shared by the reader and the
// serializer. A field written under a Format is re-read identically under
// the same Format.
type Format struct {
	Delimiter byte
	Quote     byte
	Escape    byte
}

// DefaultFormat is comma-delimited, double-quoted, backslash-escaped.
var DefaultFormat = Format{Delimiter: ',', Quote: '"', Escape: '\\'}

// Option configures a Table at construction.
type Option func(*Table)

// WithFormat sets the delimiter/quote/escape triple. Zero bytes fall back
// to the corresponding [DefaultFormat] byte.
func WithFormat(f Format) Option {
	return func(t *Table) {
		if f.Delimiter == 0 {
			f.Delimiter = DefaultFormat.Delimiter
		}
		if f.Quote == 0 {
			f.Quote = DefaultFormat.Quote
		}
		if f.Escape == 0 {
			f.Escape = DefaultFormat.Escape
		}
		t.format = f
	}
}

// WithSearchPath sets a colon-separated list of include directories that
// relative source paths are resolved against, first match wins.
func WithSearchPath(list string) Option {
	return func(t *Table) { t.searchPath = list }
}

// WithoutPathResolution disables construction-time path resolution. The
// path is used verbatim and readability is only checked at parse time.
func WithoutPathResolution() Option {
	return func(t *Table) { t.resolve = false }
}

// WithLargeFileMode overrides the size heuristic. Large-file mode sweeps
// empty rows inline during the parse/filter pass.
func WithLargeFileMode(on bool) Option {
	return func(t *Table) {
		t.largeFile = on
		t.largeSet = true
	}
}

// WithEagerGC requests one garbage-collection cycle after a large-file
// parse pass. It has no effect outside large-file mode.
func WithEagerGC(on bool) Option {
	return func(t *Table) { t.eagerGC = on }
}

// Open constructs a Table for the file at path. The source is not read
// until the first parse. Unless [WithoutPathResolution] is given, the path
// is resolved to a readable absolute path first, searching the
// [WithSearchPath] directories for relative names; resolution failure is
// an [ErrUnreadableFile].
func Open(path string, opts ...Option) (*Table, error) {
	t := &Table{
		path:    path,
		format:  DefaultFormat,
		resolve: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.resolve {
		p, err := resolvePath(t.path, t.searchPath)
		if err != nil {
			return nil, err
		}
		t.path = p
		if !t.largeSet {
			if fi, err := os.Stat(p); err == nil && fi.Size() > FlushThreshold {
				t.largeFile = true
			}
		}
	}
	return t, nil
}
