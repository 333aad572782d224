package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/trie"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Maria Silva", "MARIA"},
		{"  joão   souza", "JOAO"},
		{"JOSÉ", "JOSE"},
		{"Ângela\tMaria", "ANGELA"},
		{"ﬁona", "FIONA"},
		{"", ""},
		{"   ", ""},
		{"李", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLabel(t *testing.T) {
	for in, want := range map[string]Label{"M": Male, "f": Female, " u ": Unknown} {
		got, err := ParseLabel(in)
		if err != nil || got != want {
			t.Errorf("ParseLabel(%q) = %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "X", "MF"} {
		if _, err := ParseLabel(in); !errors.Is(err, ErrInvalidLabel) {
			t.Errorf("ParseLabel(%q): expected ErrInvalidLabel, got %v", in, err)
		}
	}
}

func referenceTrie() *trie.Trie[Label] {
	t := trie.New[Label]()
	t.Insert("MARIA", Female)
	t.Insert("JOAO", Male)
	return t
}

func TestClassifyBatch(t *testing.T) {
	schema := reader.MustSchema("name", "id")
	rows := [][]string{{"Maria Silva", "1"}, {"Joao Souza", "1"}, {"Xyzzy", "2"}}
	b := &reader.Batch{Schema: schema, Start: 80}
	for _, r := range rows {
		rec, err := reader.NewRecord(schema, r)
		if err != nil {
			t.Fatal(err)
		}
		b.Records = append(b.Records, rec)
	}

	out, err := Classify(b, referenceTrie(), Config{NameField: "name"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := []string{"F", "M", "U"}
	for i, rec := range out.Records {
		if g, _ := rec.Get("gender"); g != want[i] {
			t.Errorf("record %d gender = %q, want %q", i, g, want[i])
		}
		if id, _ := rec.Get("id"); id != rows[i][1] {
			t.Errorf("record %d id = %q", i, id)
		}
	}
	if out.Start != 80 {
		t.Errorf("start = %d, want 80", out.Start)
	}
	if _, ok := b.Records[0].Get("gender"); ok {
		t.Error("input batch was modified")
	}
	if b.Schema.Len() != 2 {
		t.Error("input schema was modified")
	}
}

func TestClassifyMissingNameField(t *testing.T) {
	b := &reader.Batch{Schema: reader.MustSchema("cnpj")}
	if _, err := Classify(b, referenceTrie(), Config{}); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestClassifyConcurrent(t *testing.T) {
	tr := referenceTrie()
	c := NewClassifier(tr, Config{})
	schema := reader.MustSchema("cnpj", "nome_socio")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			b := &reader.Batch{Schema: schema, Start: int64(w * 100)}
			for i := 0; i < 100; i++ {
				name := "MARIA X"
				if i%2 == 1 {
					name = "joão y"
				}
				rec, _ := reader.NewRecord(schema, []string{fmt.Sprint(w), name})
				b.Records = append(b.Records, rec)
			}
			out, err := c.Classify(b)
			if err != nil {
				errs <- err
				return
			}
			for i, rec := range out.Records {
				g, _ := rec.Get(DefaultLabelField)
				if (i%2 == 0 && g != "F") || (i%2 == 1 && g != "M") {
					errs <- fmt.Errorf("worker %d record %d: got %s", w, i, g)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestLoadReference(t *testing.T) {
	src := strings.Join([]string{
		"first_name,classification,frequency_total",
		"MARIA,F,11734129",
		"JOAO,M,2984119",
		"JOSÉ,M,5754529",
		",F,1",
		"ALEX,,10",
		"KIM,X,3",
		"broken",
		"MARIA,M,2",
	}, "\n") + "\n"

	tr, st, err := LoadReference(context.Background(), strings.NewReader(src), ReferenceConfig{})
	if err != nil {
		t.Fatalf("LoadReference: %v", err)
	}
	if st.Inserted != 4 {
		t.Errorf("inserted = %d, want 4", st.Inserted)
	}
	// empty name, empty label, invalid label, and the short row
	if st.Skipped != 4 {
		t.Errorf("skipped = %d, want 4", st.Skipped)
	}
	if tr.Len() != 3 {
		t.Errorf("trie has %d names, want 3", tr.Len())
	}
	if l := Lookup(tr, "Maria da Silva"); l != Male {
		t.Errorf("MARIA should have been overwritten to M, got %v", l)
	}
	if l := Lookup(tr, "José Carlos"); l != Male {
		t.Errorf("JOSE = %v", l)
	}
}

func TestLoadReferenceMissingColumn(t *testing.T) {
	_, _, err := LoadReference(context.Background(), strings.NewReader("name,label\nANA,F\n"), ReferenceConfig{})
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}
