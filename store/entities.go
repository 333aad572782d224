package store

import (
	"encoding/json"
	"fmt"

	"github.com/emptyOVO/mrkit-gender/stats"
)

// EntityStore holds finalized entity counts under a table name. It is the
// lookup side of the company join.
type EntityStore struct {
	backend Backend
	bucket  []byte
}

func NewEntityStore(b Backend, table string) *EntityStore {
	if table == "" {
		table = "default"
	}
	return &EntityStore{backend: b, bucket: []byte("entities/" + table)}
}

// PutRows stores the counts of every row in one transaction. Shares are
// derived again on lookup.
func (s *EntityStore) PutRows(rows []stats.EntityRow) error {
	kvs := make([]KV, len(rows))
	for i, r := range rows {
		data, err := json.Marshal(r.Counts())
		if err != nil {
			return err
		}
		kvs[i] = KV{Key: []byte(r.Key), Value: data}
	}
	return s.backend.PutAll(s.bucket, kvs)
}

// Entities implements stats.EntityLookup.
func (s *EntityStore) Entities(keys []string) (map[string]stats.GenderCount, error) {
	raw := make([][]byte, len(keys))
	for i, k := range keys {
		raw[i] = []byte(k)
	}
	vals, err := s.backend.GetAll(s.bucket, raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]stats.GenderCount, len(keys))
	for i, v := range vals {
		if v == nil {
			continue
		}
		var c stats.GenderCount
		if err := json.Unmarshal(v, &c); err != nil {
			return nil, fmt.Errorf("entity %s: %w", keys[i], err)
		}
		out[keys[i]] = c
	}
	return out, nil
}

// Len counts the stored entities.
func (s *EntityStore) Len() (int, error) {
	n := 0
	err := s.backend.ForEach(s.bucket, func(_, _ []byte) error {
		n++
		return nil
	})
	return n, err
}

// Reset removes the table.
func (s *EntityStore) Reset() error {
	return s.backend.DeleteBucket(s.bucket)
}
