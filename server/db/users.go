/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package db

import (
	"errors"
	"fmt"
	"time"
)

var ErrUserExists = errors.New("user already exists")

// UserRecord is keyed by the normalized email address
type UserRecord struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Verified   bool      `json:"verified"`
	HashedPass string    `json:"hashed_pass"`
	FailCount  int       `json:"fail_count"`
	Created    time.Time `json:"created"`
	LastAuth   time.Time `json:"last_auth"`
	LastFail   time.Time `json:"last_fail"`
}

// CreateUser stores a new user and fails if the email is already registered
func (d *DB) CreateUser(key string, user UserRecord) error {
	exists, err := d.KeyExists(BucketUsers, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}
	return d.SetData(BucketUsers, key, user)
}

func (d *DB) GetUser(key string) (UserRecord, error) {
	var user UserRecord
	if err := d.GetData(BucketUsers, key, &user); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return user, fmt.Errorf("user not found: %w", err)
		}
		return user, err
	}
	return user, nil
}

func (d *DB) SetUser(key string, user UserRecord) error {
	return d.SetData(BucketUsers, key, user)
}

// FindUserByID scans the users bucket. The development server keeps few
// users so a secondary index is not worth maintaining.
func (d *DB) FindUserByID(id string) (string, UserRecord, error) {
	var foundKey string
	var found UserRecord

	errFound := errors.New("found")
	err := d.ForEach(BucketUsers, func(k, v []byte) error {
		var u UserRecord
		if jsonErr := unmarshal(v, &u); jsonErr != nil {
			return nil
		}
		if u.ID == id {
			foundKey, found = string(k), u
			return errFound
		}
		return nil
	})

	if errors.Is(err, errFound) {
		return foundKey, found, nil
	}
	if err != nil {
		return "", found, err
	}
	return "", found, fmt.Errorf("user %s not found: %w", id, ErrKeyNotFound)
}
