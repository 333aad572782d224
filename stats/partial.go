package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/reader"
)

// Config names the columns Accumulate groups and counts by.
type Config struct {
	EntityField string `json:"entity_field"`
	LabelField  string `json:"label_field"`
}

func (c *Config) WithDefaults() {
	if c.EntityField == "" {
		c.EntityField = classify.DefaultEntityField
	}
	if c.LabelField == "" {
		c.LabelField = classify.DefaultLabelField
	}
}

// Partial maps an entity key to the label counts seen for it in some subset
// of the input.
type Partial map[string]GenderCount

// Accumulate counts the labels of a classified batch per entity. Labels that
// do not parse count as unknown.
func Accumulate(b *reader.Batch, cfg Config) (Partial, error) {
	cfg.WithDefaults()
	for _, col := range []string{cfg.EntityField, cfg.LabelField} {
		if _, ok := b.Schema.Index(col); !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, col)
		}
	}
	p := make(Partial)
	for _, rec := range b.Records {
		key, _ := rec.Get(cfg.EntityField)
		raw, _ := rec.Get(cfg.LabelField)
		l, err := classify.ParseLabel(raw)
		if err != nil {
			l = classify.Unknown
		}
		c := p[strings.TrimSpace(key)]
		c.Inc(l)
		p[strings.TrimSpace(key)] = c
	}
	return p, nil
}

// Merge returns the component-wise sum of a and b. Keys missing on one side
// count as zero. Neither input is modified.
func Merge(a, b Partial) Partial {
	out := make(Partial, len(a)+len(b))
	for k, c := range a {
		out[k] = c
	}
	for k, c := range b {
		out[k] = out[k].Plus(c)
	}
	return out
}

// Add folds o into p in place. Only the goroutine owning p may call it.
func (p Partial) Add(o Partial) {
	for k, c := range o {
		p[k] = p[k].Plus(c)
	}
}

// Entities returns the counts of the requested keys that p holds.
func (p Partial) Entities(keys []string) (map[string]GenderCount, error) {
	out := make(map[string]GenderCount, len(keys))
	for _, k := range keys {
		if c, ok := p[k]; ok {
			out[k] = c
		}
	}
	return out, nil
}

// Total sums the counts of every entity.
func (p Partial) Total() GenderCount {
	var t GenderCount
	for _, c := range p {
		t = t.Plus(c)
	}
	return t
}

// EntityRow is one finalized line of the entity statistics table.
type EntityRow struct {
	Key           string  `json:"entity_key"`
	M             int64   `json:"M"`
	F             int64   `json:"F"`
	U             int64   `json:"U"`
	TotalPartners int64   `json:"total_partners"`
	ShareM        float64 `json:"share_M"`
	ShareF        float64 `json:"share_F"`
	ShareU        float64 `json:"share_U"`
}

// NewEntityRow derives totals and shares from c.
func NewEntityRow(key string, c GenderCount) EntityRow {
	return EntityRow{
		Key:           key,
		M:             c.M,
		F:             c.F,
		U:             c.U,
		TotalPartners: c.Total(),
		ShareM:        c.Share(classify.Male),
		ShareF:        c.Share(classify.Female),
		ShareU:        c.Share(classify.Unknown),
	}
}

func (r EntityRow) Counts() GenderCount {
	return GenderCount{M: r.M, F: r.F, U: r.U}
}

// Share returns the stored share for l.
func (r EntityRow) Share(l classify.Label) float64 {
	switch l {
	case classify.Male:
		return r.ShareM
	case classify.Female:
		return r.ShareF
	}
	return r.ShareU
}

// Finalize turns p into table rows sorted by key. An entity without any
// partner gets zero shares.
func Finalize(p Partial) []EntityRow {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([]EntityRow, len(keys))
	for i, k := range keys {
		rows[i] = NewEntityRow(k, p[k])
	}
	return rows
}
