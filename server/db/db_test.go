/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/UEMSession/common/null"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"), null.Logger())
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

func TestHash(t *testing.T) {
	h, err := GenerateHash("correct horse", 1024)
	require.NoError(t, err)

	ok, err := VerifyHash("correct horse", h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyHash("wrong horse", h)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyHash("x", "salt$hash")
	assert.Error(t, err)

	_, err = GenerateHash("x", 1000)
	assert.Error(t, err)
}

func TestUsers(t *testing.T) {
	d := openTestDB(t)
	u := UserRecord{ID: "U-1", Username: "alice", Email: "alice@example.com", Role: "unverified"}

	require.NoError(t, d.CreateUser("alice@example.com", u))
	assert.ErrorIs(t, d.CreateUser("alice@example.com", u), ErrUserExists)

	got, err := d.GetUser("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	key, byID, err := d.FindUserByID("U-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", key)
	assert.Equal(t, "alice", byID.Username)

	_, _, err = d.FindUserByID("U-2")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = d.GetUser("bob@example.com")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestTicketsAreSingleUse(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, d.SetTicket("reset:abc", TicketRecord{UserKey: "alice@example.com", Purpose: "reset", Expires: time.Now().Add(time.Hour)}))

	tk, err := d.TakeTicket("reset:abc")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", tk.UserKey)

	_, err = d.TakeTicket("reset:abc")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestPruneExpired(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()
	require.NoError(t, d.SetSession("live", SessionRecord{UserKey: "a", Expires: now.Add(time.Hour)}))
	require.NoError(t, d.SetSession("dead", SessionRecord{UserKey: "a", Expires: now.Add(-time.Hour)}))
	require.NoError(t, d.SetTicket("verify:1", TicketRecord{UserKey: "a", Expires: now.Add(-time.Minute)}))

	n, err := d.PruneExpired(now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = d.GetSession("live")
	assert.NoError(t, err)
	_, err = d.GetSession("dead")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
