package store

import (
	"sort"
	"sync"
)

// MemoryBackend implements Backend with maps. Nothing survives Close.
type MemoryBackend struct {
	buckets map[string]map[string][]byte
	mu      sync.RWMutex
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) DeleteBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets, string(name))
	return nil
}

func (m *MemoryBackend) BucketExists(name []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buckets[string(name)]
	return ok, nil
}

func (m *MemoryBackend) bucket(name []byte) map[string][]byte {
	b, ok := m.buckets[string(name)]
	if !ok {
		b = make(map[string][]byte)
		m.buckets[string(name)] = b
	}
	return b
}

func (m *MemoryBackend) Put(bucket, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bucket(bucket)[string(key)] = copyBytes(value)
	return nil
}

func (m *MemoryBackend) Get(bucket, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyBytes(m.buckets[string(bucket)][string(key)]), nil
}

func (m *MemoryBackend) Delete(bucket, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets[string(bucket)], string(key))
	return nil
}

func (m *MemoryBackend) PutAll(bucket []byte, kvs []KV) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bucket(bucket)
	for _, kv := range kvs {
		b[string(kv.Key)] = copyBytes(kv.Value)
	}
	return nil
}

func (m *MemoryBackend) GetAll(bucket []byte, keys [][]byte) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b := m.buckets[string(bucket)]
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = copyBytes(b[string(k)])
	}
	return out, nil
}

// ForEach visits keys in byte order, like bbolt does.
func (m *MemoryBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	m.mu.RLock()
	b := m.buckets[string(bucket)]
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	vals := make(map[string][]byte, len(b))
	for k, v := range b {
		vals[k] = copyBytes(v)
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := fn([]byte(k), vals[k]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
