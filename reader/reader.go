// Package reader streams delimited text as bounded batches of records.
package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrorPolicy decides what happens to a row that fails to parse.
type ErrorPolicy int

const (
	// SkipRow logs the row and drops it.
	SkipRow ErrorPolicy = iota
	// ReportRow drops the row and attaches its ParseError to the batch.
	ReportRow
)

func (p ErrorPolicy) String() string {
	if p == ReportRow {
		return "report"
	}
	return "skip"
}

// ParseErrorPolicy maps "skip" and "report" to a policy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SkipRow, nil
	case "report":
		return ReportRow, nil
	}
	return SkipRow, fmt.Errorf("unknown parse error policy: %q", s)
}

// Config controls how a source is split into batches.
type Config struct {
	Delimiter    rune
	BatchSize    int
	MaxRowBytes  int
	OnParseError ErrorPolicy
}

// DefaultBatchSize is about 1% of the registry partner file per batch.
const DefaultBatchSize = 258731

func (c *Config) WithDefaults() {
	if c.Delimiter == 0 {
		c.Delimiter = ','
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxRowBytes <= 0 {
		c.MaxRowBytes = 1 << 20
	}
}

// Stats counts what a reader consumed so far.
type Stats struct {
	Lines       int64
	Bytes       int64
	Rows        int64
	SkippedRows int64
	// BlankLines are empty lines outside of a row. In a single-column source
	// an empty value cannot be told apart from one, so it lands here too.
	BlankLines int64
	Batches    int64
}

// Reader turns a delimited text stream into batches. It is not safe for
// concurrent use; batches it returns are owned by the caller.
type Reader struct {
	cfg    Config
	src    io.Reader
	br     *bufio.Reader
	split  *splitter
	schema *Schema
	next   int64
	done   bool
	stats  Stats
}

// NewReader reads the header row of r and returns a reader positioned on the
// first data row.
func NewReader(r io.Reader, cfg Config) (*Reader, error) {
	cfg.WithDefaults()
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, cfg.BatchSize)
	}
	if !validDelimiter(cfg.Delimiter) {
		return nil, fmt.Errorf("invalid delimiter %q", cfg.Delimiter)
	}
	rd := &Reader{
		cfg:   cfg,
		src:   r,
		br:    bufio.NewReaderSize(r, 1<<20),
		split: newSplitter(cfg.Delimiter),
	}
	for {
		fields, _, err := rd.readRow()
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		var perr *ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("header: %w", err)
		}
		if err != nil {
			return nil, err
		}
		if fields == nil {
			continue
		}
		fields[0] = strings.TrimPrefix(fields[0], "\ufeff")
		schema, err := NewSchema(fields)
		if err != nil {
			return nil, fmt.Errorf("header: %w", err)
		}
		rd.schema = schema
		return rd, nil
	}
}

// OpenFile opens path and reads its header. Close releases the file.
func OpenFile(path string, cfg Config) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, cfg)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func (r *Reader) Schema() *Schema {
	return r.schema
}

func (r *Reader) Stats() Stats {
	return r.stats
}

// Close closes the underlying stream when it is an io.Closer.
func (r *Reader) Close() error {
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Next returns the next batch of at most BatchSize records, or io.EOF once the
// stream is exhausted. Rows that fail to parse are dropped according to the
// configured policy and never end the stream.
func (r *Reader) Next(ctx context.Context) (*Batch, error) {
	if r.done {
		return nil, io.EOF
	}
	b := &Batch{
		Schema:  r.schema,
		Start:   r.next,
		Records: make([]Record, 0, minInt(r.cfg.BatchSize, 4096)),
	}
	for len(b.Records) < r.cfg.BatchSize {
		if len(b.Records)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields, line, err := r.readRow()
		if err == io.EOF {
			r.done = true
			break
		}
		var perr *ParseError
		if errors.As(err, &perr) {
			r.drop(b, perr)
			continue
		}
		if err != nil {
			return nil, err
		}
		if fields == nil {
			continue
		}
		rec, err := NewRecord(r.schema, fields)
		if err != nil {
			r.drop(b, &ParseError{Line: line, Raw: JoinRow(fields, r.cfg.Delimiter), Err: err})
			continue
		}
		b.Records = append(b.Records, rec)
	}
	if len(b.Records) == 0 && r.done {
		if len(b.Errors) > 0 {
			// keep reported rows visible even when nothing else was read
			r.stats.Batches++
			return b, nil
		}
		return nil, io.EOF
	}
	r.next += int64(len(b.Records))
	r.stats.Rows += int64(len(b.Records))
	r.stats.Batches++
	log.Tracef("[Reader] batch %d: rows %d-%d", r.stats.Batches-1, b.Start, b.End()-1)
	return b, nil
}

func (r *Reader) drop(b *Batch, perr *ParseError) {
	r.stats.SkippedRows++
	if r.cfg.OnParseError == ReportRow {
		b.Errors = append(b.Errors, perr)
		log.Debugf("[Reader] %v", perr)
		return
	}
	log.Warnf("[Reader] skipping row: %v", perr)
}

// readRow returns the fields of the next logical row and the physical line it
// started on. Blank lines between rows are counted and skipped.
func (r *Reader) readRow() ([]string, int64, error) {
	start := r.stats.Lines + 1
	var raw strings.Builder
	for {
		// room for the rest of the row plus a CRLF
		line, over, err := r.readLine(r.cfg.MaxRowBytes - r.split.size + 2)
		if err != nil && err != io.EOF {
			return nil, start, err
		}
		if over {
			r.stats.Lines++
			raw.WriteString(line)
			r.split.reset()
			return nil, start, &ParseError{Line: start, Raw: truncate(raw.String(), 256), Err: ErrRowTooLong}
		}
		if line == "" && err == io.EOF {
			if r.split.size > 0 || r.split.open() {
				r.split.reset()
				return nil, start, &ParseError{Line: start, Raw: raw.String(), Err: ErrUnterminatedQuote}
			}
			return nil, start, io.EOF
		}
		r.stats.Lines++

		body, ending := trimLineEnding(line)
		if r.split.size == 0 && body == "" {
			r.stats.BlankLines++
			if err == io.EOF {
				return nil, start, io.EOF
			}
			start = r.stats.Lines + 1
			continue
		}
		raw.WriteString(line)
		r.split.feed(body)
		if r.split.size > r.cfg.MaxRowBytes {
			r.split.reset()
			return nil, start, &ParseError{Line: start, Raw: truncate(raw.String(), 256), Err: ErrRowTooLong}
		}
		if !r.split.open() {
			return r.split.finish(), start, nil
		}
		if err == io.EOF {
			r.split.reset()
			return nil, start, &ParseError{Line: start, Raw: raw.String(), Err: ErrUnterminatedQuote}
		}
		// the line break belongs to the open quoted field
		r.split.feed(ending)
	}
}

// readLine returns the next physical line with its line ending. A line longer
// than max bytes is consumed to its end without being buffered; over is set
// and line holds its first bytes only.
func (r *Reader) readLine(max int) (line string, over bool, err error) {
	var buf []byte
	for {
		chunk, err := r.br.ReadSlice('\n')
		r.stats.Bytes += int64(len(chunk))
		switch {
		case over:
		case len(chunk) > 0 && len(buf)+len(chunk) > max:
			over = true
			if keep := 256 - len(buf); keep > 0 {
				buf = append(buf, chunk[:minInt(keep, len(chunk))]...)
			}
		default:
			buf = append(buf, chunk...)
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return string(buf), over, err
	}
}

func trimLineEnding(line string) (body, ending string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
