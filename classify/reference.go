package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/trie"
)

// ReferenceConfig describes the reference name table.
type ReferenceConfig struct {
	NameColumn  string        `json:"name_column"`
	LabelColumn string        `json:"label_column"`
	Reader      reader.Config `json:"-"`
}

func (c *ReferenceConfig) WithDefaults() {
	if c.NameColumn == "" {
		c.NameColumn = "first_name"
	}
	if c.LabelColumn == "" {
		c.LabelColumn = "classification"
	}
	c.Reader.WithDefaults()
}

// LoadStats reports what LoadReference did with the table.
type LoadStats struct {
	Rows     int64
	Inserted int64
	Skipped  int64
}

// LoadReference builds the name trie from a reference table. Rows with an
// empty name or a missing or invalid label are skipped and counted. Names are
// folded the same way lookups are, so accented reference entries still match.
func LoadReference(ctx context.Context, r io.Reader, cfg ReferenceConfig) (*trie.Trie[Label], LoadStats, error) {
	cfg.WithDefaults()
	var st LoadStats
	rd, err := reader.NewReader(r, cfg.Reader)
	if err != nil {
		return nil, st, fmt.Errorf("reference table: %w", err)
	}
	for _, col := range []string{cfg.NameColumn, cfg.LabelColumn} {
		if _, ok := rd.Schema().Index(col); !ok {
			return nil, st, fmt.Errorf("reference table: %w: %q", ErrMissingField, col)
		}
	}

	t := trie.New[Label]()
	for {
		b, err := rd.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, st, fmt.Errorf("reference table: %w", err)
		}
		for _, rec := range b.Records {
			st.Rows++
			name, _ := rec.Get(cfg.NameColumn)
			raw, _ := rec.Get(cfg.LabelColumn)
			key := strings.TrimSpace(Fold(name))
			label, err := ParseLabel(raw)
			if key == "" || err != nil {
				st.Skipped++
				log.Tracef("[Reference] skip row %d: name %q label %q", st.Rows, name, raw)
				continue
			}
			t.Insert(key, label)
			st.Inserted++
		}
	}
	st.Skipped += rd.Stats().SkippedRows
	log.Infof("[Reference] loaded %d names (%d rows, %d skipped)", t.Len(), st.Rows, st.Skipped)
	return t, st, nil
}

// LoadReferenceFile is LoadReference over a file on disk.
func LoadReferenceFile(ctx context.Context, path string, cfg ReferenceConfig) (*trie.Trie[Label], LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("reference table: %w", err)
	}
	defer f.Close()
	return LoadReference(ctx, f, cfg)
}
