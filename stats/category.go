package stats

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"

	"github.com/emptyOVO/mrkit-gender/classify"
)

// Segment selects the runes [Start, End) of a category code. The default
// [0, 2) is the two-digit division of a CNAE code.
type Segment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

var DefaultSegment = Segment{Start: 0, End: 2}

func (s *Segment) WithDefaults() {
	if s.Start == 0 && s.End == 0 {
		*s = DefaultSegment
	}
}

func (s Segment) Validate() error {
	if s.Start < 0 || s.End <= s.Start {
		return fmt.Errorf("%w: [%d,%d)", ErrInvalidSegment, s.Start, s.End)
	}
	return nil
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// ExtractSegment returns the selected digits of code. Codes that are too short
// or contain anything but digits in the selected range are rejected.
func ExtractSegment(code string, seg Segment) (string, error) {
	if err := seg.Validate(); err != nil {
		return "", err
	}
	r := []rune(strings.TrimSpace(code))
	if seg.End > len(r) {
		return "", fmt.Errorf("%w: code %q shorter than %s", ErrInvalidSegment, code, seg)
	}
	part := r[seg.Start:seg.End]
	for _, c := range part {
		if !unicode.IsDigit(c) {
			return "", fmt.Errorf("%w: code %q is not numeric", ErrInvalidSegment, code)
		}
	}
	return string(part), nil
}

// CompanyRow is an entity row joined with the company fields the category
// statistics need.
type CompanyRow struct {
	EntityRow
	Capital      float64 `json:"capital_social"`
	CategoryCode string  `json:"cnae_fiscal"`
}

// CategoryStats are the summed statistics of one category.
type CategoryStats struct {
	GenderCount
	ShareCapitalM float64 `json:"share_capital_M"`
	ShareCapitalF float64 `json:"share_capital_F"`
	ShareCapitalU float64 `json:"share_capital_U"`
}

func (s CategoryStats) Plus(o CategoryStats) CategoryStats {
	return CategoryStats{
		GenderCount:   s.GenderCount.Plus(o.GenderCount),
		ShareCapitalM: s.ShareCapitalM + o.ShareCapitalM,
		ShareCapitalF: s.ShareCapitalF + o.ShareCapitalF,
		ShareCapitalU: s.ShareCapitalU + o.ShareCapitalU,
	}
}

// CategoryPartial maps a category segment to its summed statistics.
type CategoryPartial map[string]CategoryStats

// AccumulateCategories groups company rows by the selected segment of their
// category code. Each company adds its counts and capital*share per label.
// Rows with an unusable code are skipped; the number skipped is returned.
func AccumulateCategories(rows []CompanyRow, seg Segment) (CategoryPartial, int) {
	p := make(CategoryPartial)
	skipped := 0
	for _, row := range rows {
		cat, err := ExtractSegment(row.CategoryCode, seg)
		if err != nil {
			skipped++
			log.Debugf("[Stats] skip company %s: %v", row.Key, err)
			continue
		}
		p[cat] = p[cat].Plus(CategoryStats{
			GenderCount:   row.Counts(),
			ShareCapitalM: row.Capital * row.Share(classify.Male),
			ShareCapitalF: row.Capital * row.Share(classify.Female),
			ShareCapitalU: row.Capital * row.Share(classify.Unknown),
		})
	}
	return p, skipped
}

// MergeCategories is Merge for category partials.
func MergeCategories(a, b CategoryPartial) CategoryPartial {
	out := make(CategoryPartial, len(a)+len(b))
	for k, s := range a {
		out[k] = s
	}
	for k, s := range b {
		out[k] = out[k].Plus(s)
	}
	return out
}

func (p CategoryPartial) Add(o CategoryPartial) {
	for k, s := range o {
		p[k] = p[k].Plus(s)
	}
}

// CategoryRow is one finalized line of the category statistics table.
type CategoryRow struct {
	Category      string  `json:"category"`
	M             int64   `json:"M"`
	F             int64   `json:"F"`
	U             int64   `json:"U"`
	TotalPartners int64   `json:"total_partners"`
	ShareM        float64 `json:"share_M"`
	ShareF        float64 `json:"share_F"`
	ShareU        float64 `json:"share_U"`
	ShareCapitalM float64 `json:"share_capital_M"`
	ShareCapitalF float64 `json:"share_capital_F"`
	ShareCapitalU float64 `json:"share_capital_U"`
}

// FinalizeCategories turns p into rows sorted by category.
func FinalizeCategories(p CategoryPartial) []CategoryRow {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([]CategoryRow, len(keys))
	for i, k := range keys {
		s := p[k]
		rows[i] = CategoryRow{
			Category:      k,
			M:             s.M,
			F:             s.F,
			U:             s.U,
			TotalPartners: s.Total(),
			ShareM:        s.Share(classify.Male),
			ShareF:        s.Share(classify.Female),
			ShareU:        s.Share(classify.Unknown),
			ShareCapitalM: s.ShareCapitalM,
			ShareCapitalF: s.ShareCapitalF,
			ShareCapitalU: s.ShareCapitalU,
		}
	}
	return rows
}
