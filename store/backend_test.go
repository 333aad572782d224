package store

import (
	"bytes"
	"path/filepath"
	"testing"
)

// backendTestSuite runs the same checks against every Backend.
func backendTestSuite(t *testing.T, newBackend func(t *testing.T) Backend) {
	bucket := []byte("test")

	t.Run("PutAndGet", func(t *testing.T) {
		b := newBackend(t)
		if err := b.Put(bucket, []byte("k1"), []byte("v1")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := b.Get(bucket, []byte("k1"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("v1")) {
			t.Errorf("Get returned %s, want v1", got)
		}
		if got, err := b.Get(bucket, []byte("missing")); err != nil || got != nil {
			t.Errorf("missing key: %q %v", got, err)
		}
		if got, err := b.Get([]byte("nobucket"), []byte("k1")); err != nil || got != nil {
			t.Errorf("missing bucket: %q %v", got, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := newBackend(t)
		b.Put(bucket, []byte("k1"), []byte("v1"))
		if err := b.Delete(bucket, []byte("k1")); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if got, _ := b.Get(bucket, []byte("k1")); got != nil {
			t.Error("key should not exist after deletion")
		}
		if err := b.Delete([]byte("nobucket"), []byte("k1")); err != nil {
			t.Errorf("Delete on a missing bucket: %v", err)
		}
	})

	t.Run("Buckets", func(t *testing.T) {
		b := newBackend(t)
		if ok, _ := b.BucketExists(bucket); ok {
			t.Error("bucket should not exist before the first write")
		}
		b.Put(bucket, []byte("k"), []byte("v"))
		if ok, _ := b.BucketExists(bucket); !ok {
			t.Error("bucket should exist after a write")
		}
		if err := b.DeleteBucket(bucket); err != nil {
			t.Fatalf("DeleteBucket failed: %v", err)
		}
		if ok, _ := b.BucketExists(bucket); ok {
			t.Error("bucket should not exist after deletion")
		}
		if err := b.DeleteBucket(bucket); err != nil {
			t.Errorf("DeleteBucket should be idempotent: %v", err)
		}
	})

	t.Run("PutAllGetAll", func(t *testing.T) {
		b := newBackend(t)
		kvs := []KV{
			{Key: []byte("b"), Value: []byte("2")},
			{Key: []byte("a"), Value: []byte("1")},
			{Key: []byte("c"), Value: []byte("3")},
		}
		if err := b.PutAll(bucket, kvs); err != nil {
			t.Fatalf("PutAll failed: %v", err)
		}
		got, err := b.GetAll(bucket, [][]byte{[]byte("c"), []byte("x"), []byte("a")})
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if string(got[0]) != "3" || got[1] != nil || string(got[2]) != "1" {
			t.Errorf("GetAll = %q", got)
		}

		var keys []string
		err = b.ForEach(bucket, func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach failed: %v", err)
		}
		if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
			t.Errorf("ForEach visited %v", keys)
		}
		if err := b.ForEach([]byte("nobucket"), func(k, v []byte) error {
			t.Error("empty bucket visited")
			return nil
		}); err != nil {
			t.Errorf("ForEach on a missing bucket: %v", err)
		}
	})
}

func TestBboltBackend(t *testing.T) {
	backendTestSuite(t, func(t *testing.T) Backend {
		b, err := NewBboltBackend(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("failed to create backend: %v", err)
		}
		t.Cleanup(func() { b.Close() })
		return b
	})
}

func TestMemoryBackend(t *testing.T) {
	backendTestSuite(t, func(t *testing.T) Backend {
		return NewMemoryBackend()
	})
}

func TestOpen(t *testing.T) {
	if _, err := Open("redis", ""); err == nil {
		t.Error("expected an error for an unknown backend")
	}
	b, err := Open("memory", "")
	if err != nil {
		t.Fatal(err)
	}
	b.Close()
}
