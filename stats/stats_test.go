package stats

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/trie"
)

func batchOf(t *testing.T, columns []string, rows ...[]string) *reader.Batch {
	t.Helper()
	schema := reader.MustSchema(columns...)
	b := &reader.Batch{Schema: schema}
	for _, r := range rows {
		rec, err := reader.NewRecord(schema, r)
		if err != nil {
			t.Fatal(err)
		}
		b.Records = append(b.Records, rec)
	}
	return b
}

func TestEndToEndPartners(t *testing.T) {
	tr := trie.New[classify.Label]()
	tr.Insert("MARIA", classify.Female)
	tr.Insert("JOAO", classify.Male)

	b := batchOf(t, []string{"name", "id"},
		[]string{"Maria Silva", "1"},
		[]string{"Joao Souza", "1"},
		[]string{"Xyzzy", "2"},
	)
	classified, err := classify.Classify(b, tr, classify.Config{NameField: "name"})
	if err != nil {
		t.Fatal(err)
	}
	p, err := Accumulate(classified, Config{EntityField: "id"})
	if err != nil {
		t.Fatal(err)
	}
	want := Partial{"1": {M: 1, F: 1}, "2": {U: 1}}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("partial = %v, want %v", p, want)
	}

	rows := Finalize(p)
	if len(rows) != 2 || rows[0].Key != "1" || rows[1].Key != "2" {
		t.Fatalf("rows = %+v", rows)
	}
	r := rows[0]
	if r.TotalPartners != 2 || r.ShareF != 0.5 || r.ShareM != 0.5 || r.ShareU != 0 {
		t.Errorf("entity 1 = %+v", r)
	}
	if rows[1].ShareU != 1 || rows[1].TotalPartners != 1 {
		t.Errorf("entity 2 = %+v", rows[1])
	}
}

func TestAccumulateMissingField(t *testing.T) {
	b := batchOf(t, []string{"cnpj"})
	if _, err := Accumulate(b, Config{}); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestMergeLaws(t *testing.T) {
	a := Partial{"1": {M: 1}, "2": {F: 2, U: 1}}
	b := Partial{"2": {M: 3}, "3": {U: 4}}
	c := Partial{"1": {F: 5}, "3": {M: 1, F: 1}, "4": {}}

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	rotated := Merge(Merge(b, c), a)
	if !reflect.DeepEqual(left, right) || !reflect.DeepEqual(left, rotated) {
		t.Errorf("merge is not associative/commutative:\n%v\n%v\n%v", left, right, rotated)
	}
	if !reflect.DeepEqual(Merge(a, b), Merge(b, a)) {
		t.Error("merge is not commutative")
	}
	want := Partial{"1": {M: 1, F: 5}, "2": {M: 3, F: 2, U: 1}, "3": {M: 1, F: 1, U: 4}, "4": {}}
	if !reflect.DeepEqual(left, want) {
		t.Errorf("merge = %v, want %v", left, want)
	}
	// inputs untouched
	if !reflect.DeepEqual(a, Partial{"1": {M: 1}, "2": {F: 2, U: 1}}) {
		t.Errorf("merge modified its input: %v", a)
	}

	acc := Partial{}
	for _, p := range []Partial{c, a, b} {
		acc.Add(p)
	}
	if !reflect.DeepEqual(acc, want) {
		t.Errorf("Add = %v, want %v", acc, want)
	}
	if tot := acc.Total(); tot != (GenderCount{M: 5, F: 8, U: 5}) {
		t.Errorf("total = %v", tot)
	}
}

func TestFinalizeZeroTotal(t *testing.T) {
	rows := Finalize(Partial{"empty": {}})
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	r := rows[0]
	if r.TotalPartners != 0 || r.ShareM != 0 || r.ShareF != 0 || r.ShareU != 0 {
		t.Errorf("zero entity = %+v", r)
	}
	for _, v := range []float64{r.ShareM, r.ShareF, r.ShareU} {
		if math.IsNaN(v) {
			t.Error("share is NaN")
		}
	}
}

func TestExtractSegment(t *testing.T) {
	tests := []struct {
		code string
		seg  Segment
		want string
		ok   bool
	}{
		{"4711302", DefaultSegment, "47", true},
		{" 4711302 ", Segment{2, 4}, "11", true},
		{"4711302", Segment{0, 7}, "4711302", true},
		{"47", Segment{0, 3}, "", false},
		{"", DefaultSegment, "", false},
		{"A711302", DefaultSegment, "", false},
		{"4711302", Segment{3, 3}, "", false},
		{"4711302", Segment{-1, 2}, "", false},
	}
	for _, tt := range tests {
		got, err := ExtractSegment(tt.code, tt.seg)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ExtractSegment(%q, %v) = %q, %v; want %q", tt.code, tt.seg, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidSegment) {
			t.Errorf("ExtractSegment(%q, %v): expected ErrInvalidSegment, got %v", tt.code, tt.seg, err)
		}
	}
}

func TestCategoryCapitalShares(t *testing.T) {
	rows := []CompanyRow{
		{EntityRow: NewEntityRow("a", GenderCount{M: 1, F: 1}), Capital: 1000, CategoryCode: "4711302"},
		{EntityRow: NewEntityRow("b", GenderCount{F: 3, U: 1}), Capital: 400, CategoryCode: "4712100"},
		{EntityRow: NewEntityRow("c", GenderCount{}), Capital: 50, CategoryCode: "6201500"},
		{EntityRow: NewEntityRow("d", GenderCount{M: 1}), Capital: 10, CategoryCode: "x"},
	}
	p, skipped := AccumulateCategories(rows, DefaultSegment)
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	want := CategoryPartial{
		"47": {GenderCount: GenderCount{M: 1, F: 4, U: 1}, ShareCapitalM: 500, ShareCapitalF: 800, ShareCapitalU: 100},
		"62": {},
	}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("categories = %+v, want %+v", p, want)
	}

	// splitting the rows across two partials and merging gives the same sums
	p1, _ := AccumulateCategories(rows[:1], DefaultSegment)
	p2, _ := AccumulateCategories(rows[1:], DefaultSegment)
	if merged := MergeCategories(p2, p1); !reflect.DeepEqual(merged, want) {
		t.Errorf("merged = %+v", merged)
	}

	out := FinalizeCategories(p)
	if len(out) != 2 || out[0].Category != "47" || out[1].Category != "62" {
		t.Fatalf("rows = %+v", out)
	}
	if out[0].TotalPartners != 6 || out[0].ShareF != 4.0/6 || out[0].ShareCapitalF != 800 {
		t.Errorf("47 = %+v", out[0])
	}
	if out[1].TotalPartners != 0 || out[1].ShareM != 0 {
		t.Errorf("62 = %+v", out[1])
	}
}

func TestJoinCompanies(t *testing.T) {
	b := batchOf(t, []string{"cnpj", "situacao", "capital_social", "cnae_fiscal"},
		[]string{"1", "02", "1000.00", "4711302"},
		[]string{"2", "08", "500", "4711302"},
		[]string{"3", "02", "2.500,50", "6201500"},
		[]string{"4", "02", "lots", "6201500"},
		[]string{" 5 ", "02", "", "0111301"},
	)
	lookup := Partial{"1": {M: 1, F: 1}, "5": {F: 2}}

	rows, st, err := JoinCompanies(b, lookup, CompanyConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if st != (JoinStats{Rows: 5, Filtered: 1, Invalid: 1, Missing: 1}) {
		t.Errorf("stats = %+v", st)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Key != "1" || rows[0].ShareF != 0.5 || rows[0].Capital != 1000 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	// company 3 has no partners and joins with zero counts
	if rows[1].Key != "3" || rows[1].TotalPartners != 0 || rows[1].Capital != 2500.5 {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[2].Key != "5" || rows[2].F != 2 || rows[2].Capital != 0 {
		t.Errorf("row 2 = %+v", rows[2])
	}

	all, st, err := JoinCompanies(b, lookup, CompanyConfig{Status: "*"})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 || st.Filtered != 0 {
		t.Errorf("unfiltered join: %d rows, %+v", len(all), st)
	}
}

func TestParseCapital(t *testing.T) {
	for in, want := range map[string]float64{"": 0, "10": 10, "10.5": 10.5, "1.234,56": 1234.56, "0,5": 0.5} {
		got, err := ParseCapital(in)
		if err != nil || got != want {
			t.Errorf("ParseCapital(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"abc", "NaN", "Inf"} {
		if _, err := ParseCapital(in); !errors.Is(err, ErrInvalidCapital) {
			t.Errorf("ParseCapital(%q): expected ErrInvalidCapital, got %v", in, err)
		}
	}
}
