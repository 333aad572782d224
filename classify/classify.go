// Package classify assigns a presumed gender to partner records by looking up
// their first name in a reference trie.
package classify

import (
	"fmt"

	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/trie"
)

const (
	DefaultNameField   = "nome_socio"
	DefaultEntityField = "cnpj"
	DefaultLabelField  = "gender"
)

// Config names the columns the classifier reads and writes.
type Config struct {
	NameField  string `json:"name_field"`
	LabelField string `json:"label_field"`
}

func (c *Config) WithDefaults() {
	if c.NameField == "" {
		c.NameField = DefaultNameField
	}
	if c.LabelField == "" {
		c.LabelField = DefaultLabelField
	}
}

// Lookup resolves a normalized name to a label.
func Lookup(t *trie.Trie[Label], name string) Label {
	key := Normalize(name)
	if key == "" {
		return Unknown
	}
	if l, ok := t.Query(key); ok {
		return l
	}
	return Unknown
}

// Classify returns a copy of b whose records carry an extra label column.
// b is not modified. Concurrent calls on different batches may share t as
// long as nothing inserts into it.
func Classify(b *reader.Batch, t *trie.Trie[Label], cfg Config) (*reader.Batch, error) {
	cfg.WithDefaults()
	if _, ok := b.Schema.Index(cfg.NameField); !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, cfg.NameField)
	}
	schema := b.Schema.With(cfg.LabelField)
	out := &reader.Batch{
		Schema:  schema,
		Start:   b.Start,
		Records: make([]reader.Record, len(b.Records)),
		Errors:  b.Errors,
	}
	for i, rec := range b.Records {
		name, _ := rec.Get(cfg.NameField)
		out.Records[i] = rec.Extend(schema, cfg.LabelField, Lookup(t, name).String())
	}
	return out, nil
}

// Classifier binds a trie to a column configuration.
type Classifier struct {
	trie *trie.Trie[Label]
	cfg  Config
}

func NewClassifier(t *trie.Trie[Label], cfg Config) *Classifier {
	cfg.WithDefaults()
	return &Classifier{trie: t, cfg: cfg}
}

func (c *Classifier) Config() Config {
	return c.cfg
}

func (c *Classifier) Classify(b *reader.Batch) (*reader.Batch, error) {
	return Classify(b, c.trie, c.cfg)
}

// ClassifyWith classifies b with the classifier's trie and other columns.
func (c *Classifier) ClassifyWith(b *reader.Batch, cfg Config) (*reader.Batch, error) {
	return Classify(b, c.trie, cfg)
}

// Names returns the number of reference names the classifier knows.
func (c *Classifier) Names() int {
	return c.trie.Len()
}
