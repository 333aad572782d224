package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/stats"
)

var _ mapreduce.Checkpoint[stats.Partial] = (*Checkpoints[stats.Partial])(nil)
var _ stats.EntityLookup = (*EntityStore)(nil)

func TestCheckpointsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	b, err := NewBboltBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	cp := NewCheckpoints[stats.Partial](b, "run-1")
	want := stats.Partial{"1": {M: 1, F: 2}, "2": {U: 5}}
	if err := cp.Save("unit-0", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok, _ := NewCheckpoints[stats.Partial](b, "run-2").Load("unit-0"); ok {
		t.Error("checkpoints must be scoped to their run")
	}
	b.Close()

	b, err = NewBboltBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	cp = NewCheckpoints[stats.Partial](b, "run-1")
	got, ok, err := cp.Load("unit-0")
	if err != nil || !ok {
		t.Fatalf("Load: %v %v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}
	if _, ok, _ := cp.Load("unit-1"); ok {
		t.Error("unit-1 was never saved")
	}
	if ids, _ := cp.Units(); !reflect.DeepEqual(ids, []string{"unit-0"}) {
		t.Errorf("Units = %v", ids)
	}
	if err := cp.Clear(); err != nil {
		t.Fatal(err)
	}
	if ids, _ := cp.Units(); len(ids) != 0 {
		t.Errorf("Units after Clear = %v", ids)
	}
}

func TestCategoryCheckpoint(t *testing.T) {
	cp := NewCheckpoints[stats.CategoryPartial](NewMemoryBackend(), "cat")
	want := stats.CategoryPartial{"47": {GenderCount: stats.GenderCount{M: 1, F: 3}, ShareCapitalF: 750.5}}
	if err := cp.Save("u", want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := cp.Load("u")
	if err != nil || !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %v %v %v", got, ok, err)
	}
}

func TestEntityStore(t *testing.T) {
	s := NewEntityStore(NewMemoryBackend(), "partners")
	rows := stats.Finalize(stats.Partial{"1": {M: 1, F: 1}, "2": {U: 1}})
	if err := s.PutRows(rows); err != nil {
		t.Fatal(err)
	}
	got, err := s.Entities([]string{"2", "3", "1"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]stats.GenderCount{"1": {M: 1, F: 1}, "2": {U: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entities = %v, want %v", got, want)
	}
	if n, _ := s.Len(); n != 2 {
		t.Errorf("Len = %d", n)
	}
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.Len(); n != 0 {
		t.Errorf("Len after Reset = %d", n)
	}
}

func TestRuns(t *testing.T) {
	b := NewMemoryBackend()
	info := RunInfo{ID: "r1", Job: "partners", Started: time.Unix(100, 0).UTC(), Units: 3, Complete: true}
	if err := PutRun(b, info); err != nil {
		t.Fatal(err)
	}
	got, err := GetRun(b, "r1")
	if err != nil || !reflect.DeepEqual(got, info) {
		t.Errorf("GetRun = %+v, %v", got, err)
	}
	if _, err := GetRun(b, "r2"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
