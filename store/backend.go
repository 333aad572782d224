// Package store persists run state: unit checkpoints, run records and the
// finalized entity statistics the category job looks up.
package store

// Backend is a bucketed key-value store. Buckets are created on first write.
// Reading from a bucket that does not exist behaves like reading an empty one.
type Backend interface {
	DeleteBucket(name []byte) error
	BucketExists(name []byte) (bool, error)

	Put(bucket, key, value []byte) error
	// Get returns nil for a missing key.
	Get(bucket, key []byte) ([]byte, error)
	Delete(bucket, key []byte) error

	// PutAll writes every pair in one transaction.
	PutAll(bucket []byte, kvs []KV) error
	// GetAll reads keys in one transaction. The result is aligned with keys,
	// with nil for the missing ones.
	GetAll(bucket []byte, keys [][]byte) ([][]byte, error)

	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}

type KV struct {
	Key   []byte
	Value []byte
}
