package worker

import (
	"fmt"
	"testing"
)

func TestWorkerForKeyStable(t *testing.T) {
	n := 8
	key := "unit-000042"
	first := workerForKey(key, n)
	for i := 0; i < 100; i++ {
		got := workerForKey(key, n)
		if got != first {
			t.Fatalf("expected stable worker for key %q: %d != %d", key, got, first)
		}
	}
}

func TestWorkerForKeyRange(t *testing.T) {
	n := 3
	used := map[int]bool{}
	for i := 0; i < 64; i++ {
		key := fmt.Sprintf("unit-%06d", i)
		got := workerForKey(key, n)
		if got < 0 || got >= n {
			t.Fatalf("worker id out of range for key %q: %d", key, got)
		}
		used[got] = true
	}
	if len(used) != n {
		t.Errorf("64 units only reached %d of %d workers", len(used), n)
	}
}

func TestIsCompatibleVersion(t *testing.T) {
	tests := map[string]bool{
		ProtocolVersion: true,
		"v1.4.2":        true,
		"v2.0.0":        false,
		"1.0.0":         false,
		"":              false,
	}
	for v, want := range tests {
		if got := IsCompatibleVersion(v); got != want {
			t.Errorf("IsCompatibleVersion(%q) = %v, want %v", v, got, want)
		}
	}
}
