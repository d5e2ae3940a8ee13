/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/common/null"
)

func TestUnbackedConfigHasDefaults(t *testing.T) {
	c, err := Config("")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", c.CC.Get(ConfigServerURL).String())
	assert.Equal(t, "/session", c.CC.Get(ConfigRefreshBase).String())
	assert.Equal(t, StoreBolt, c.CC.Get(ConfigStoreType).String())
	assert.Equal(t, 30*time.Second, c.CC.Get(ConfigRefreshTimeout).Seconds())
	assert.Equal(t, time.Duration(0), c.CC.Get(ConfigLeeway).Seconds())
	assert.Empty(t, c.CC.Get(ConfigStoreFile).String())
}

func TestConfigFileDefaultsStoreFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "client.json")

	c, err := Config(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(file), LogName+"-session.db"), c.CC.Get(ConfigStoreFile).String())

	again, err := Config(file)
	require.NoError(t, err)
	assert.Equal(t, c.CC.Get(ConfigStoreFile).String(), again.CC.Get(ConfigStoreFile).String())
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	for _, tc := range []struct {
		storeType string
		file      string
	}{
		{StoreMemory, ""},
		{StoreBolt, filepath.Join(dir, "session.db")},
		{StoreFile, filepath.Join(dir, "session.json")},
	} {
		t.Run(tc.storeType, func(t *testing.T) {
			c, err := Config("")
			require.NoError(t, err)
			c.CC.Set(ConfigStoreType, tc.storeType)
			c.CC.Set(ConfigStoreFile, tc.file)

			store, closer, err := c.OpenStore(null.Logger())
			require.NoError(t, err)
			defer closer()

			require.NoError(t, store.Set(authstore.SlotRole, "user"))
			role, ok := store.Get(authstore.SlotRole)
			assert.True(t, ok)
			assert.Equal(t, "user", role)
		})
	}
}

func TestOpenStoreErrors(t *testing.T) {
	c, err := Config("")
	require.NoError(t, err)

	c.CC.Set(ConfigStoreType, "carrier-pigeon")
	_, _, err = c.OpenStore(null.Logger())
	assert.Error(t, err)

	c.CC.Set(ConfigStoreType, StoreBolt)
	_, _, err = c.OpenStore(null.Logger())
	assert.Error(t, err)
}
