/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnbackedConfigHasDefaults(t *testing.T) {
	c, err := Config("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", c.SC.Get(ConfigListen).String())
	assert.Equal(t, "/session", c.SC.Get(ConfigRefreshBase).String())
	assert.Equal(t, 300, c.SC.Get(ConfigAccessTokenLife).Int())
	assert.NotEmpty(t, c.SP.Get(ConfigJWTKey).String())
	assert.Empty(t, c.SC.Get(ConfigDBPath).String())
}

func TestConfigFileKeepsKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "server.json")

	first, err := Config(file)
	require.NoError(t, err)
	key := first.SP.Get(ConfigJWTKey).String()
	assert.Equal(t, filepath.Join(filepath.Dir(file), LogName+".db"), first.SC.Get(ConfigDBPath).String())

	second, err := Config(file)
	require.NoError(t, err)
	assert.Equal(t, key, second.SP.Get(ConfigJWTKey).String())
}
