package storage

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const defaultBucket = "integral"

// BoltBackend keeps every named entry in a single bbolt bucket.
type BoltBackend struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (or creates) the data file and ensures the bucket exists.
func OpenBolt(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte(defaultBucket)
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &BoltBackend{db: db, bucket: bucket}, nil
}

// Get returns a copy of the value stored under key.
func (b *BoltBackend) Get(key string) ([]byte, error) {
	if b == nil || b.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(b.bucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

// Put replaces the value under key.
func (b *BoltBackend) Put(key string, value []byte) error {
	if b == nil || b.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Put([]byte(key), value)
	})
}

// Delete removes key. Deleting an absent key is not an error.
func (b *BoltBackend) Delete(key string) error {
	if b == nil || b.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Delete([]byte(key))
	})
}

// Close releases the file lock.
func (b *BoltBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
