/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package devserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/UEMSession/common/null"
	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/server/data"
	"github.com/UnifyEM/UEMSession/server/global"
)

func testConfig(t *testing.T) *global.ServerConfig {
	t.Helper()
	conf, err := global.Config("")
	require.NoError(t, err)
	conf.SC.Set(global.ConfigListen, "127.0.0.1:0")
	conf.SC.Set(global.ConfigPenaltyBoxMin, 0)
	conf.SC.Set(global.ConfigPenaltyBoxMax, 0)
	return conf
}

func TestRunServesUntilCancelled(t *testing.T) {
	s, err := New(testConfig(t), null.Logger(), data.WithHashCost(1024))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return s.Addr() != "" }, 5*time.Second, 5*time.Millisecond)

	resp, err := http.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)
	var health schema.APIGenericResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, schema.APIStatusOK, health.Status)

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunReportsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = busy.Close() }()

	conf := testConfig(t)
	conf.SC.Set(global.ConfigListen, busy.Addr().String())

	s, err := New(conf, null.Logger(), data.WithHashCost(1024))
	require.NoError(t, err)
	assert.Error(t, s.Run(context.Background()))
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, null.Logger())
	assert.Error(t, err)
}
