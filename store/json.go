package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Open returns a backend by kind: "bbolt" needs a path, "memory" ignores it.
func Open(kind, path string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "", "bbolt", "bolt":
		return NewBboltBackend(path)
	case "memory":
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}

func putJSON(b Backend, bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return b.Put(bucket, key, data)
}

// getJSON decodes the value at key into v and reports whether it existed.
func getJSON(b Backend, bucket, key []byte, v any) (bool, error) {
	data, err := b.Get(bucket, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return true, nil
}
