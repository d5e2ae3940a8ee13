/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package db

import (
	"encoding/json"
	"time"
)

// SessionRecord is a server-side refresh session, keyed by the cookie value
type SessionRecord struct {
	UserKey string    `json:"user_key"`
	Created time.Time `json:"created"`
	Expires time.Time `json:"expires"`
}

// TicketRecord is a one-time password reset token or email verification code
type TicketRecord struct {
	UserKey string    `json:"user_key"`
	Purpose string    `json:"purpose"`
	Expires time.Time `json:"expires"`
}

// MailboxRecord holds the most recent tickets issued to an address. The
// development server has no mail transport, so this stands in for the inbox.
type MailboxRecord struct {
	ResetToken       string `json:"reset_token,omitempty"`
	VerificationCode string `json:"verification_code,omitempty"`
}

func (d *DB) SetSession(id string, s SessionRecord) error {
	return d.SetData(BucketSessions, id, s)
}

func (d *DB) GetSession(id string) (SessionRecord, error) {
	var s SessionRecord
	err := d.GetData(BucketSessions, id, &s)
	return s, err
}

func (d *DB) DeleteSession(id string) error {
	return d.DeleteData(BucketSessions, id)
}

func (d *DB) SetTicket(id string, t TicketRecord) error {
	return d.SetData(BucketTickets, id, t)
}

// TakeTicket redeems a ticket. It is deleted whether or not it has expired.
func (d *DB) TakeTicket(id string) (TicketRecord, error) {
	var t TicketRecord
	err := d.TakeData(BucketTickets, id, &t)
	return t, err
}

func (d *DB) GetMailbox(key string) (MailboxRecord, error) {
	var m MailboxRecord
	err := d.GetData(BucketMailbox, key, &m)
	return m, err
}

func (d *DB) SetMailbox(key string, m MailboxRecord) error {
	return d.SetData(BucketMailbox, key, m)
}

// PruneExpired removes expired sessions and tickets
func (d *DB) PruneExpired(now time.Time) (int, error) {
	expired := func(value []byte) bool {
		var e struct {
			Expires time.Time `json:"expires"`
		}
		if unmarshal(value, &e) != nil {
			return true
		}
		return e.Expires.Before(now)
	}

	sessions, err := d.Prune(BucketSessions, expired)
	if err != nil {
		return sessions, err
	}
	tickets, err := d.Prune(BucketTickets, expired)
	return sessions + tickets, err
}

func unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
