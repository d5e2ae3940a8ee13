/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package authstore

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// BucketSession holds one key per slot
const BucketSession = "Session"

// Bolt is a Store backed by a bbolt file
type Bolt struct {
	db     *bbolt.DB
	logger interfaces.Logger
}

var _ Store = (*Bolt)(nil)

// OpenBolt opens (or creates) a bbolt database at the specified path and
// makes sure the session bucket exists
func OpenBolt(filePath string, logger interfaces.Logger) (*Bolt, error) {
	logger.Debugf(8201, "opening session database: %s", filePath)

	// The timeout lets bbolt wait if another process holds the file lock
	db, err := bbolt.Open(filePath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists([]byte(BucketSession))
		if createErr != nil {
			return fmt.Errorf("failed to create bucket %s: %w", BucketSession, createErr)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bolt{db: db, logger: logger}, nil
}

// Close the database, ignoring any errors
func (b *Bolt) Close() {
	_ = b.db.Close()
}

func (b *Bolt) Get(slot Slot) (string, bool) {
	var value string
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketSession))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", BucketSession)
		}
		data := bucket.Get([]byte(slot))
		if data != nil {
			value = string(data)
			found = true
		}
		return nil
	})
	if err != nil {
		b.logger.Errorf(8202, "session read failed for %s: %s", slot, err.Error())
		return "", false
	}
	return value, found
}

func (b *Bolt) Set(slot Slot, value string) error {
	return b.Update(func(w Writer) error { return w.Set(slot, value) })
}

func (b *Bolt) Clear(slot Slot) error {
	return b.Update(func(w Writer) error { return w.Clear(slot) })
}

func (b *Bolt) ClearAll() error {
	return b.Update(func(w Writer) error {
		for _, slot := range Slots {
			if err := w.Clear(slot); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update runs fn inside a single bbolt read-write transaction
func (b *Bolt) Update(fn func(w Writer) error) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(BucketSession))
		if err != nil {
			return fmt.Errorf("%s bucket not available: %w", BucketSession, err)
		}
		return fn(boltWriter{bucket: bucket})
	})
	if err != nil {
		return fmt.Errorf("session write failed: %w", err)
	}
	return nil
}

type boltWriter struct {
	bucket *bbolt.Bucket
}

func (w boltWriter) Set(slot Slot, value string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if value == "" {
		return w.bucket.Delete([]byte(slot))
	}
	return w.bucket.Put([]byte(slot), []byte(value))
}

func (w boltWriter) Clear(slot Slot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	return w.bucket.Delete([]byte(slot))
}
