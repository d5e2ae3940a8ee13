/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package db stores the development server's users, refresh sessions and
// one-time tickets in a bbolt file
package db

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnifyEM/UEMSession/common/interfaces"
)

type DB struct {
	db     *bbolt.DB
	logger interfaces.Logger
}

const BucketUsers = "Users"
const BucketSessions = "Sessions"
const BucketTickets = "Tickets"
const BucketMailbox = "Mailbox"

var bucketList = []string{BucketUsers, BucketSessions, BucketTickets, BucketMailbox}

// Open opens (or creates) a Bolt DB at the specified path and creates the
// buckets if they do not already exist
func Open(filePath string, logger interfaces.Logger) (*DB, error) {
	logger.Infof(8651, "opening database: %s", filePath)

	// The Timeout option allows Bolt to wait if the file is locked by another process
	db, err := bbolt.Open(filePath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucketName := range bucketList {
			if _, createErr := tx.CreateBucketIfNotExists([]byte(bucketName)); createErr != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucketName, createErr)
			}
		}
		return nil
	})
	if err != nil {
		// If creating buckets failed, close the DB to avoid resource leaks
		_ = db.Close()
		return nil, err
	}

	return &DB{db: db, logger: logger}, nil
}

// Close the database, ignore any errors
func (d *DB) Close() {
	_ = d.db.Close()
}
