//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrBucketNotFound = errors.New("bucket not found")
)

// SetData serializes and stores data in a specified bucket using a given key
func (d *DB) SetData(bucketName string, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize data: %w", err)
	}

	return d.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("%s: %w", bucketName, ErrBucketNotFound)
		}
		if err := bucket.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to store data in bucket: %w", err)
		}
		return nil
	})
}

// GetData retrieves and deserializes data from a specified bucket using a given key
func (d *DB) GetData(bucketName string, key string, result any) error {
	return d.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("%s: %w", bucketName, ErrBucketNotFound)
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return ErrKeyNotFound
		}

		// If passed a nil result, don't deserialize the data
		if result != nil {
			if err := json.Unmarshal(data, result); err != nil {
				return fmt.Errorf("failed to deserialize data: %w", err)
			}
		}
		return nil
	})
}

// TakeData retrieves, deserializes and deletes an entry in one transaction.
// One-time tickets use it so that a ticket can never be redeemed twice.
func (d *DB) TakeData(bucketName string, key string, result any) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("%s: %w", bucketName, ErrBucketNotFound)
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return ErrKeyNotFound
		}
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to deserialize data: %w", err)
		}
		return bucket.Delete([]byte(key))
	})
}

// DeleteData deletes data from a specified bucket using a given key
func (d *DB) DeleteData(bucketName string, key string) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("%s: %w", bucketName, ErrBucketNotFound)
		}
		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("error deleting data %w", err)
		}
		return nil
	})
}

// KeyExists checks if a key exists in a specified bucket
func (d *DB) KeyExists(bucketName string, key string) (bool, error) {
	var exists bool
	err := d.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("%s: %w", bucketName, ErrBucketNotFound)
		}
		exists = bucket.Get([]byte(key)) != nil
		return nil
	})
	return exists, err
}

// ForEach iterates over all keys in the specified bucket and applies the given function
func (d *DB) ForEach(bucketName string, fn func(key, value []byte) error) error {
	return d.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("%s: %w", bucketName, ErrBucketNotFound)
		}
		return b.ForEach(fn)
	})
}

// Prune deletes every entry in the bucket for which expired returns true
func (d *DB) Prune(bucketName string, expired func(value []byte) bool) (int, error) {
	count := 0
	err := d.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("%s: %w", bucketName, ErrBucketNotFound)
		}

		var doomed [][]byte
		err := b.ForEach(func(k, v []byte) error {
			if expired(v) {
				doomed = append(doomed, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range doomed {
			if err = b.Delete(k); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}
