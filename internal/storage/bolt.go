package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucket = "preferences"

// NoBucketError is returned when the preferences bucket is missing.
type NoBucketError struct {
	bucketName string
}

func (e NoBucketError) Error() string {
	return fmt.Sprintf("%s bucket does not exist", e.bucketName)
}

// BoltStore keeps values in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens (creating if needed) the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucket)); err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Get(key string) (value string, ok bool, err error) {
	err = b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		if bucket == nil {
			return NoBucketError{bucketName: boltBucket}
		}
		raw := bucket.Get([]byte(key))
		if raw != nil {
			value, ok = string(raw), true
		}
		return nil
	})
	return value, ok, err
}

func (b *BoltStore) Set(key, value string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		if bucket == nil {
			return NoBucketError{bucketName: boltBucket}
		}
		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("error setting %s key: %w", key, err)
		}
		return nil
	})
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}
