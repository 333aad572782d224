package trie

import (
	"sync"
	"testing"
)

func TestInsertQueryExact(t *testing.T) {
	tr := New[string]()
	names := map[string]string{
		"MARIA":  "F",
		"MARIO":  "M",
		"JOAO":   "M",
		"JOANA":  "F",
		"ANA":    "F",
		"ANABEL": "F",
	}
	for k, v := range names {
		tr.Insert(k, v)
	}
	for k, want := range names {
		got, ok := tr.Query(k)
		if !ok || got != want {
			t.Errorf("Query(%q) = %q, %v; want %q", k, got, ok, want)
		}
	}
	if tr.Len() != len(names) {
		t.Errorf("Len() = %d, want %d", tr.Len(), len(names))
	}
}

func TestInsertOverwrite(t *testing.T) {
	tr := New[string]()
	tr.Insert("ARIEL", "F")
	tr.Insert("ARIEL", "M")
	tr.Insert("ARI", "U")

	if got, _ := tr.Query("ARIEL"); got != "M" {
		t.Errorf("expected last write to win, got %q", got)
	}
	if got, _ := tr.Query("ARI"); got != "U" {
		t.Errorf("expected prefix node value U, got %q", got)
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
	// shared prefix must not be duplicated
	if n := len(tr.root.children); n != 1 {
		t.Errorf("root has %d children, want 1", n)
	}
}

func TestQueryTolerance(t *testing.T) {
	tr := New[string]()
	tr.Insert("MARIA", "F")
	tr.Insert("JOAO", "M")
	tr.Insert("LUCAS", "M")

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{"final rune differs", "MARIAH", "F", true},
		{"final rune differs on intermediate node", "LUCA", "", false},
		{"mismatch before final rune", "MARXA", "", false},
		{"two extra runes", "MARIAHH", "", false},
		{"single unknown rune", "Z", "", false},
		{"unknown first rune of two", "ZA", "", false},
		{"prefix without value", "MAR", "", false},
		{"last rune replaced", "JOAA", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tr.Query(tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Query(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestQueryFallbackUsesPrefixValue(t *testing.T) {
	tr := New[string]()
	tr.Insert("JOA", "M")
	tr.Insert("JOAO", "M")
	tr.Insert("JOANA", "F")

	// "JOAX": J-O-A matched, X missing at the last rune -> value of JOA.
	if got, ok := tr.Query("JOAX"); !ok || got != "M" {
		t.Errorf("Query(JOAX) = %q, %v; want M, true", got, ok)
	}
	// "JOANX": fails on the last rune, JOAN holds no value.
	if _, ok := tr.Query("JOANX"); ok {
		t.Error("Query(JOANX) should be absent: JOAN has no value")
	}
}

func TestEmptyKeyInsertIgnored(t *testing.T) {
	tr := New[int]()
	tr.Insert("", 7)
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}
	if _, ok := tr.Query(""); ok {
		t.Error("empty key must be absent")
	}
}

func TestUnicodeKeys(t *testing.T) {
	tr := New[string]()
	tr.Insert("JOSÉ", "M")
	if got, ok := tr.Query("JOSÉ"); !ok || got != "M" {
		t.Errorf("Query(JOSÉ) = %q, %v", got, ok)
	}
	if got, ok := tr.Query("JOSÉE"); !ok || got != "M" {
		t.Errorf("Query(JOSÉE) = %q, %v; want fallback to JOSÉ", got, ok)
	}
}

func TestConcurrentQuery(t *testing.T) {
	tr := New[string]()
	tr.Insert("MARIA", "F")
	tr.Insert("JOAO", "M")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if v, _ := tr.Query("MARIA"); v != "F" {
					t.Errorf("concurrent Query(MARIA) = %q", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}
