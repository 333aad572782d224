package reader

import (
	"strings"
	"unicode/utf8"
)

const quote = '"'

type splitState int

const (
	stFieldStart splitState = iota
	stUnquoted
	stQuoted
	stQuoteInQuoted // a quote seen inside a quoted field: closing or escaped
)

// splitter is an incremental field splitter. Text may be fed in pieces so a
// quoted field can span several physical lines.
type splitter struct {
	delim  rune
	state  splitState
	field  strings.Builder
	fields []string
	size   int
}

func newSplitter(delim rune) *splitter {
	return &splitter{delim: delim}
}

func (s *splitter) emit() {
	s.fields = append(s.fields, s.field.String())
	s.field.Reset()
}

func (s *splitter) feed(text string) {
	s.size += len(text)
	for _, c := range text {
		switch s.state {
		case stFieldStart:
			switch c {
			case s.delim:
				s.emit()
			case quote:
				s.state = stQuoted
			default:
				s.field.WriteRune(c)
				s.state = stUnquoted
			}
		case stUnquoted:
			switch c {
			case s.delim:
				s.emit()
				s.state = stFieldStart
			case quote:
				// a bare quote closes the unquoted field and opens a quoted one
				s.emit()
				s.state = stQuoted
			default:
				s.field.WriteRune(c)
			}
		case stQuoted:
			if c == quote {
				s.state = stQuoteInQuoted
			} else {
				s.field.WriteRune(c)
			}
		case stQuoteInQuoted:
			switch c {
			case quote:
				s.field.WriteRune(quote)
				s.state = stQuoted
			case s.delim:
				s.emit()
				s.state = stFieldStart
			default:
				// text right after a closing quote starts a new field
				s.emit()
				s.field.WriteRune(c)
				s.state = stUnquoted
			}
		}
	}
}

// open reports whether a quoted field is still waiting for its closing quote.
func (s *splitter) open() bool {
	return s.state == stQuoted
}

// finish closes the current row and returns its fields.
func (s *splitter) finish() []string {
	s.emit()
	out := s.fields
	s.reset()
	return out
}

func (s *splitter) reset() {
	s.state = stFieldStart
	s.field.Reset()
	s.fields = nil
	s.size = 0
}

// SplitRow splits one logical row into unquoted field values. The row may
// contain newlines inside quoted fields.
func SplitRow(row string, delim rune) ([]string, error) {
	s := newSplitter(delim)
	s.feed(row)
	if s.open() {
		return nil, ErrUnterminatedQuote
	}
	return s.finish(), nil
}

// JoinRow is the inverse of SplitRow: fields containing the delimiter, a
// quote or a line break are quoted, with inner quotes doubled.
func JoinRow(fields []string, delim rune) string {
	var b strings.Builder
	d := string(delim)
	for i, f := range fields {
		if i > 0 {
			b.WriteString(d)
		}
		if needsQuotes(f, delim) {
			b.WriteByte(quote)
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte(quote)
			continue
		}
		b.WriteString(f)
	}
	return b.String()
}

func needsQuotes(f string, delim rune) bool {
	if f == "" {
		return false
	}
	return strings.ContainsRune(f, delim) || strings.ContainsAny(f, "\"\r\n")
}

func validDelimiter(r rune) bool {
	return r != 0 && r != quote && r != '\r' && r != '\n' && r != utf8.RuneError
}
