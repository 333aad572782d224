package reader

import "fmt"

// Schema is the ordered column set shared by every record of a source.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a schema from header names. Duplicate names are rejected.
func NewSchema(columns []string) (*Schema, error) {
	s := &Schema{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(s.columns, columns)
	for i, c := range s.columns {
		if _, dup := s.index[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		s.index[c] = i
	}
	return s, nil
}

// MustSchema is NewSchema for static column lists.
func MustSchema(columns ...string) *Schema {
	s, err := NewSchema(columns)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

func (s *Schema) Len() int {
	return len(s.columns)
}

func (s *Schema) Index(column string) (int, bool) {
	i, ok := s.index[column]
	return i, ok
}

// With returns a schema that also contains column, appended last. The
// receiver is returned unchanged when the column already exists.
func (s *Schema) With(column string) *Schema {
	if _, ok := s.index[column]; ok {
		return s
	}
	out, _ := NewSchema(append(s.Columns(), column))
	return out
}

// Record is one row of a source. It is never modified after it is read;
// annotation builds a new record on a wider schema.
type Record struct {
	schema *Schema
	values []string
}

// NewRecord wraps values, which must have one entry per schema column. The
// record takes ownership of values.
func NewRecord(schema *Schema, values []string) (Record, error) {
	if len(values) != schema.Len() {
		return Record{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(values), schema.Len())
	}
	return Record{schema: schema, values: values}, nil
}

func (r Record) Schema() *Schema {
	return r.schema
}

// Get returns the value of column and whether the column exists.
func (r Record) Get(column string) (string, bool) {
	i, ok := r.schema.Index(column)
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// Values returns a copy of the record values in schema order.
func (r Record) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Extend returns a copy of r laid out on schema (which must be r's schema
// with extra columns appended) with column set to value.
func (r Record) Extend(schema *Schema, column, value string) Record {
	vals := make([]string, schema.Len())
	copy(vals, r.values)
	if i, ok := schema.Index(column); ok {
		vals[i] = value
	}
	return Record{schema: schema, values: vals}
}

// Batch is a bounded run of records sharing one schema. Start is the global
// index of the first record in the source.
type Batch struct {
	Schema  *Schema
	Start   int64
	Records []Record
	// Errors holds rows dropped from this batch under the ReportRow policy.
	Errors []*ParseError
}

func (b *Batch) Len() int {
	return len(b.Records)
}

// Index returns the global row index of the i-th record.
func (b *Batch) Index(i int) int64 {
	return b.Start + int64(i)
}

// End is the exclusive global index after the last record.
func (b *Batch) End() int64 {
	return b.Start + int64(len(b.Records))
}
