package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var sessionBucket = []byte("session")

// BoltStore keeps values in a single boltdb file
type BoltStore struct {
	db *bolt.DB
}

func (b *BoltStore) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		if data := bucket.Get([]byte(key)); data != nil {
			value = append([]byte{}, data...)
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %v: %w", key, err)
	}
	if value == nil {
		return "", false, nil
	}
	return string(value), true, nil
}

func (b *BoltStore) Set(_ context.Context, key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), []byte(value))
	})
}

func (b *BoltStore) Remove(_ context.Context, key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}

// Close closes underlying database
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// NewBolt opens or creates boltdb file at path
func NewBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt storage %v: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}
