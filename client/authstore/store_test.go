/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package authstore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/UEMSession/common/null"
)

// storeTests runs the common suite against any Store implementation
func storeTests(t *testing.T, store Store) {
	t.Helper()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set(SlotCredential, "a.b.c"))
		v, ok := store.Get(SlotCredential)
		assert.True(t, ok)
		assert.Equal(t, "a.b.c", v)
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		require.NoError(t, store.Set(SlotRole, "user"))
		require.NoError(t, store.Set(SlotRole, "admin"))
		v, _ := store.Get(SlotRole)
		assert.Equal(t, "admin", v)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Set(SlotPrincipal, `{"id":"u-1"}`))
		require.NoError(t, store.Clear(SlotPrincipal))
		_, ok := store.Get(SlotPrincipal)
		assert.False(t, ok)
	})

	t.Run("EmptyValueClears", func(t *testing.T) {
		require.NoError(t, store.Set(SlotRole, "user"))
		require.NoError(t, store.Set(SlotRole, ""))
		_, ok := store.Get(SlotRole)
		assert.False(t, ok)

		require.NoError(t, store.Set(SlotRole, "user"))
		require.NoError(t, store.Update(func(w Writer) error { return w.Set(SlotRole, "") }))
		_, ok = store.Get(SlotRole)
		assert.False(t, ok)
	})

	t.Run("ClearMissing", func(t *testing.T) {
		assert.NoError(t, store.Clear(SlotPrincipal))
	})

	t.Run("UnknownSlot", func(t *testing.T) {
		err := store.Set(Slot("password"), "x")
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})

	t.Run("UpdateIsAllOrNothing", func(t *testing.T) {
		require.NoError(t, store.Set(SlotCredential, "old"))
		boom := errors.New("boom")
		err := store.Update(func(w Writer) error {
			if err := w.Set(SlotCredential, "new"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		v, _ := store.Get(SlotCredential)
		assert.Equal(t, "old", v)

		require.NoError(t, store.Update(func(w Writer) error {
			if err := w.Set(SlotCredential, "new"); err != nil {
				return err
			}
			return w.Set(SlotAuthenticated, "true")
		}))
		v, _ = store.Get(SlotCredential)
		assert.Equal(t, "new", v)
		v, _ = store.Get(SlotAuthenticated)
		assert.Equal(t, "true", v)
	})

	t.Run("ClearSession", func(t *testing.T) {
		require.NoError(t, store.Set(SlotCredential, "a.b.c"))
		require.NoError(t, store.Set(SlotPrincipal, `{"id":"u-1"}`))
		require.NoError(t, store.Set(SlotRole, "user"))
		require.NoError(t, store.Set(SlotAuthenticated, "true"))

		require.NoError(t, ClearSession(store))
		for _, slot := range []Slot{SlotCredential, SlotPrincipal, SlotRole} {
			_, ok := store.Get(slot)
			assert.False(t, ok, "slot %s", slot)
		}
		v, _ := store.Get(SlotAuthenticated)
		assert.Equal(t, "false", v)
	})

	t.Run("ClearAll", func(t *testing.T) {
		require.NoError(t, store.Set(SlotCredential, "a.b.c"))
		require.NoError(t, store.Set(SlotAuthenticated, "true"))
		require.NoError(t, store.ClearAll())
		for _, slot := range Slots {
			_, ok := store.Get(slot)
			assert.False(t, ok, "slot %s", slot)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	storeTests(t, NewMemory())
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := OpenBolt(path, null.Logger())
	require.NoError(t, err)
	storeTests(t, store)
	store.Close()
}

func TestBoltStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := OpenBolt(path, null.Logger())
	require.NoError(t, err)
	require.NoError(t, store.Set(SlotCredential, "a.b.c"))
	store.Close()

	store, err = OpenBolt(path, null.Logger())
	require.NoError(t, err)
	defer store.Close()
	v, ok := store.Get(SlotCredential)
	assert.True(t, ok)
	assert.Equal(t, "a.b.c", v)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := OpenFile(path, null.Logger())
	require.NoError(t, err)
	storeTests(t, store)
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := OpenFile(path, null.Logger())
	require.NoError(t, err)
	require.NoError(t, store.Set(SlotRole, "admin"))

	reopened, err := OpenFile(path, null.Logger())
	require.NoError(t, err)
	v, ok := reopened.Get(SlotRole)
	assert.True(t, ok)
	assert.Equal(t, "admin", v)
}
