package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/emptyOVO/mrkit-gender/reader"
)

// EntityLookup resolves entity keys to finalized partner counts. Keys it does
// not know are left out of the result.
type EntityLookup interface {
	Entities(keys []string) (map[string]GenderCount, error)
}

// ActiveStatus is the registry code of an active company.
const ActiveStatus = "02"

// CompanyConfig names the company source columns.
type CompanyConfig struct {
	KeyField      string `json:"key_field"`
	StatusField   string `json:"status_field"`
	CapitalField  string `json:"capital_field"`
	CategoryField string `json:"category_field"`
	// Status keeps only companies with this status. "*" keeps all.
	Status string `json:"status"`
}

func (c *CompanyConfig) WithDefaults() {
	if c.KeyField == "" {
		c.KeyField = "cnpj"
	}
	if c.StatusField == "" {
		c.StatusField = "situacao"
	}
	if c.CapitalField == "" {
		c.CapitalField = "capital_social"
	}
	if c.CategoryField == "" {
		c.CategoryField = "cnae_fiscal"
	}
	if c.Status == "" {
		c.Status = ActiveStatus
	}
}

// JoinStats counts what JoinCompanies did with a batch.
type JoinStats struct {
	Rows     int64 `json:"rows"`
	Filtered int64 `json:"filtered"`
	Invalid  int64 `json:"invalid"`
	Missing  int64 `json:"missing"`
}

func (s JoinStats) Plus(o JoinStats) JoinStats {
	return JoinStats{
		Rows:     s.Rows + o.Rows,
		Filtered: s.Filtered + o.Filtered,
		Invalid:  s.Invalid + o.Invalid,
		Missing:  s.Missing + o.Missing,
	}
}

// JoinCompanies keeps the companies of b whose status matches, attaches the
// partner statistics of each from lookup and parses its capital. A company
// with no known partners joins with zero counts.
func JoinCompanies(b *reader.Batch, lookup EntityLookup, cfg CompanyConfig) ([]CompanyRow, JoinStats, error) {
	cfg.WithDefaults()
	var st JoinStats
	cols := []string{cfg.KeyField, cfg.CapitalField, cfg.CategoryField}
	if cfg.Status != "*" {
		cols = append(cols, cfg.StatusField)
	}
	for _, col := range cols {
		if _, ok := b.Schema.Index(col); !ok {
			return nil, st, fmt.Errorf("%w: %q", ErrMissingField, col)
		}
	}

	type company struct {
		key, code string
		capital   float64
	}
	kept := make([]company, 0, len(b.Records))
	keys := make([]string, 0, len(b.Records))
	for _, rec := range b.Records {
		st.Rows++
		if cfg.Status != "*" {
			if s, _ := rec.Get(cfg.StatusField); strings.TrimSpace(s) != cfg.Status {
				st.Filtered++
				continue
			}
		}
		key, _ := rec.Get(cfg.KeyField)
		raw, _ := rec.Get(cfg.CapitalField)
		capital, err := ParseCapital(raw)
		if err != nil {
			st.Invalid++
			continue
		}
		code, _ := rec.Get(cfg.CategoryField)
		key = strings.TrimSpace(key)
		kept = append(kept, company{key: key, code: code, capital: capital})
		keys = append(keys, key)
	}

	found, err := lookup.Entities(keys)
	if err != nil {
		return nil, st, fmt.Errorf("entity lookup: %w", err)
	}
	rows := make([]CompanyRow, len(kept))
	for i, c := range kept {
		counts, ok := found[c.key]
		if !ok {
			st.Missing++
		}
		rows[i] = CompanyRow{
			EntityRow:    NewEntityRow(c.key, counts),
			Capital:      c.capital,
			CategoryCode: c.code,
		}
	}
	return rows, st, nil
}

// ParseCapital reads a capital value written with either a dot or a comma as
// decimal separator. An empty value is zero.
func ParseCapital(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCapital, s)
	}
	return v, nil
}
