package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/batch/mysql_batch"
	"github.com/emptyOVO/mrkit-gender/reader"
)

// resolveInputs returns the files a source reads, exporting the SQL table
// first for a sql source.
func resolveInputs(ctx context.Context, c FlowSourceConfig) ([]string, error) {
	if c.Type != "sql" {
		return mapreduce.ExpandInputs(c.Inputs)
	}
	db, err := openDB(ctx, c.DB)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return mysql_batch.NewSourceAdapter(c.Config).Export(ctx, db)
}

func readerConfig(c FlowSourceConfig) reader.Config {
	policy, _ := reader.ParseErrorPolicy(c.OnParseError)
	cfg := reader.Config{
		BatchSize:    c.BatchSize,
		MaxRowBytes:  c.MaxRowBytes,
		OnParseError: policy,
	}
	if c.Delimiter != "" {
		cfg.Delimiter, _ = utf8.DecodeRuneInString(c.Delimiter)
	}
	return cfg
}

// batchSource reads files one after another and yields their batches with a
// unit id that stays the same across runs over the same inputs.
type batchSource struct {
	files []string
	cfg   reader.Config
	next  int
	cur   *reader.Reader
	curID string
	read  reader.Stats
}

func newBatchSource(files []string, cfg reader.Config) *batchSource {
	return &batchSource{files: files, cfg: cfg}
}

func (s *batchSource) Next(ctx context.Context) (*reader.Batch, string, error) {
	for {
		if s.cur == nil {
			if s.next >= len(s.files) {
				return nil, "", io.EOF
			}
			path := s.files[s.next]
			idx := s.next
			s.next++
			r, err := reader.OpenFile(path, s.cfg)
			if errors.Is(err, reader.ErrEmptyInput) {
				log.Warnf("[Source] %s is empty", path)
				continue
			}
			if err != nil {
				return nil, "", err
			}
			s.cur = r
			s.curID = fmt.Sprintf("%04d-%s", idx, filepath.Base(path))
			log.Debugf("[Source] reading %s", path)
		}
		b, err := s.cur.Next(ctx)
		if err == io.EOF {
			s.closeCurrent()
			continue
		}
		if err != nil {
			return nil, "", err
		}
		for _, perr := range b.Errors {
			log.Warnf("[Source] %s: %v", s.curID, perr)
		}
		return b, fmt.Sprintf("%s@%d", s.curID, b.Start), nil
	}
}

func (s *batchSource) closeCurrent() {
	st := s.cur.Stats()
	s.read.Lines += st.Lines
	s.read.Bytes += st.Bytes
	s.read.Rows += st.Rows
	s.read.SkippedRows += st.SkippedRows
	s.read.Batches += st.Batches
	s.cur.Close()
	s.cur = nil
}

// Close releases the file being read, if any.
func (s *batchSource) Close() {
	if s.cur != nil {
		s.closeCurrent()
	}
}

// Stats sums the reader statistics of every file read so far.
func (s *batchSource) Stats() reader.Stats {
	return s.read
}
