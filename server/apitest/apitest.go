/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package apitest runs the development auth server in-process for tests
package apitest

import (
	"net/http/httptest"
	"testing"

	"github.com/UnifyEM/UEMSession/common/null"
	"github.com/UnifyEM/UEMSession/server/api"
	"github.com/UnifyEM/UEMSession/server/data"
	"github.com/UnifyEM/UEMSession/server/global"
)

// Server is a running development server
type Server struct {
	*httptest.Server
	API *api.API
}

// New starts a server with a temporary database, no penalty box and a
// cheap password hash. It is shut down when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	conf, err := global.Config("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	conf.SC.Set(global.ConfigPenaltyBoxMin, 0)
	conf.SC.Set(global.ConfigPenaltyBoxMax, 0)

	d, err := data.New(conf, null.Logger(), data.WithHashCost(1024))
	if err != nil {
		t.Fatalf("data: %v", err)
	}

	a, err := api.New(conf, d, null.Logger())
	if err != nil {
		d.Close()
		t.Fatalf("api: %v", err)
	}

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		srv.Close()
		d.Close()
	})
	return &Server{Server: srv, API: a}
}
