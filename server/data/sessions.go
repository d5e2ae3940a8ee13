//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package data

import (
	"encoding/json"
	"time"

	"github.com/UnifyEM/UEMSession/server/db"
	"github.com/UnifyEM/UEMSession/server/global"
)

// NewSession starts a refresh session for the user and returns its ID,
// which the API hands to the client as an HttpOnly cookie
func (d *Data) NewSession(user db.UserRecord) (string, time.Time, error) {
	id, err := global.GenerateToken()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expires := now.Add(d.refreshLife)
	err = d.database.SetSession(id, db.SessionRecord{
		UserKey: userKey(user.Email),
		Created: now,
		Expires: expires})
	if err != nil {
		return "", time.Time{}, err
	}
	return id, expires, nil
}

// RefreshSession returns the user that owns a live refresh session
func (d *Data) RefreshSession(id string) (db.UserRecord, error) {
	if id == "" {
		return db.UserRecord{}, ErrSessionInvalid
	}

	s, err := d.database.GetSession(id)
	if err != nil {
		return db.UserRecord{}, ErrSessionInvalid
	}

	if s.Expires.Before(time.Now()) {
		_ = d.database.DeleteSession(id)
		return db.UserRecord{}, ErrSessionInvalid
	}

	user, err := d.database.GetUser(s.UserKey)
	if err != nil {
		return db.UserRecord{}, ErrSessionInvalid
	}
	return user, nil
}

// EndSession deletes a refresh session. Unknown IDs are not an error.
func (d *Data) EndSession(id string) error {
	if id == "" {
		return nil
	}
	return d.database.DeleteSession(id)
}

func (d *Data) endUserSessions(key string) error {
	var doomed []string
	err := d.database.ForEach(db.BucketSessions, func(k, v []byte) error {
		var s db.SessionRecord
		if jsonErr := json.Unmarshal(v, &s); jsonErr == nil && s.UserKey == key {
			doomed = append(doomed, string(k))
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, id := range doomed {
		if err = d.database.DeleteSession(id); err != nil {
			return err
		}
	}
	return nil
}
