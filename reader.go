package csvtab

import "iter"

// reader decodes delimited text from an in-memory byte slice. The whole
// source is resident by design, so rewinding is a cursor reset rather than
// a seek on the underlying file.
type reader struct {
	data []byte
	pos  int
	fmt  Format
}

func newReader(data []byte, f Format) *reader {
	return &reader{data: data, fmt: f}
}

// rewind resets the cursor to the start of the source. The column resolver
// uses this when the first physical row turns out to be data, not a header.
func (r *reader) rewind() { r.pos = 0 }

// next decodes one row. Quoted fields may embed the delimiter and
// newlines; a quote is represented inside a quoted field either doubled or
// prefixed with the escape byte. Malformed quoting never fails: a bare
// quote mid-field is literal and an unterminated quote runs to EOF.
func (r *reader) next() ([]string, bool) {
	if r.pos >= len(r.data) {
		return nil, false
	}
	var (
		fields   []string
		field    []byte
		inQuotes bool
	)
	for r.pos < len(r.data) {
		b := r.data[r.pos]
		switch {
		case inQuotes:
			if b == r.fmt.Escape && r.pos+1 < len(r.data) &&
				(r.data[r.pos+1] == r.fmt.Quote || r.data[r.pos+1] == r.fmt.Escape) {
				field = append(field, r.data[r.pos+1])
				r.pos += 2
				continue
			}
			if b == r.fmt.Quote {
				if r.pos+1 < len(r.data) && r.data[r.pos+1] == r.fmt.Quote {
					field = append(field, b)
					r.pos += 2
					continue
				}
				inQuotes = false
				r.pos++
				continue
			}
			field = append(field, b)
			r.pos++
		case b == r.fmt.Quote && len(field) == 0:
			inQuotes = true
			r.pos++
		case b == r.fmt.Delimiter:
			fields = append(fields, string(field))
			field = field[:0]
			r.pos++
		case b == '\r':
			r.pos++
			if r.pos < len(r.data) && r.data[r.pos] == '\n' {
				r.pos++
			}
			return append(fields, string(field)), true
		case b == '\n':
			r.pos++
			return append(fields, string(field)), true
		default:
			field = append(field, b)
			r.pos++
		}
	}
	// Source ended without a trailing newline.
	return append(fields, string(field)), true
}

// rows yields every remaining row from the current cursor position.
func (r *reader) rows() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for {
			fields, ok := r.next()
			if !ok {
				return
			}
			if !yield(fields) {
				return
			}
		}
	}
}
