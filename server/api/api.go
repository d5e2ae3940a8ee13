//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package api serves the development auth server's HTTP endpoints
package api

import (
	"errors"
	"net"
	"net/http"
	"path"
	"sync/atomic"

	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/common/userver"
	"github.com/UnifyEM/UEMSession/server/data"
	"github.com/UnifyEM/UEMSession/server/global"
)

type API struct {
	logger interfaces.Logger
	conf   *global.ServerConfig
	data   *data.Data
	server *userver.HServer

	// Fault injection
	failRefresh  atomic.Bool
	rejectNext   atomic.Int32
	refreshCount atomic.Int64
}

// New creates the API and registers its routes
func New(conf *global.ServerConfig, d *data.Data, logger interfaces.Logger) (*API, error) {
	if conf == nil || d == nil || logger == nil {
		return nil, errors.New("config, data and logger are required")
	}
	a := &API{logger: logger, conf: conf, data: d}

	s, err := userver.New(
		userver.WithLogger(logger),
		userver.WithSEid(global.SEid),
		userver.WithListen(conf.SC.Get(global.ConfigListen).String()),
		userver.WithHTTPTimeout(conf.SC.Get(global.ConfigHTTPTimeout).Int()),
		userver.WithHTTPIdleTimeout(conf.SC.Get(global.ConfigHTTPIdleTimeout).Int()),
		userver.WithHandlerTimeout(conf.SC.Get(global.ConfigHandlerTimeout).Int()),
		userver.WithMaxConcurrent(conf.SC.Get(global.ConfigMaxConcurrent).Int()),
		userver.WithPenaltyBox(
			conf.SC.Get(global.ConfigPenaltyBoxMin).Int(),
			conf.SC.Get(global.ConfigPenaltyBoxMax).Int()))
	if err != nil {
		return nil, err
	}
	a.server = s

	s.AddRoutes(userver.Routes{
		{Name: "register", Methods: []string{"POST"}, Pattern: schema.EndpointRegister, JHandler: a.postRegister},
		{Name: "login", Methods: []string{"POST"}, Pattern: schema.EndpointLogin, JHandler: a.postLogin},
		{Name: "logout", Methods: []string{"POST"}, Pattern: schema.EndpointLogout, JHandler: a.postLogout},
		{Name: "forgot-password", Methods: []string{"POST"}, Pattern: schema.EndpointForgotPassword, JHandler: a.postForgotPassword},
		{Name: "reset-password", Methods: []string{"POST"}, Pattern: schema.EndpointResetPassword, JHandler: a.postResetPassword},
		{Name: "verify-email", Methods: []string{"POST"}, Pattern: schema.EndpointVerifyEmail, JHandler: a.postVerifyEmail, AuthFunc: a.authFunc},
		{Name: "refresh", Methods: []string{"POST"}, Pattern: a.RefreshPath(), JHandler: a.postRefresh},
		{Name: "me", Methods: []string{"GET"}, Pattern: schema.EndpointMe, JHandler: a.getMe, AuthFunc: a.authFunc},
	})

	if conf.SC.Get(global.ConfigDevEndpoints).Bool() {
		s.AddRoutes(userver.Routes{
			{Name: "dev-faults", Methods: []string{"POST"}, Pattern: schema.EndpointDevFaults, JHandler: a.postFaults},
			{Name: "dev-mailbox", Methods: []string{"GET"}, Pattern: schema.EndpointDevMailbox, JHandler: a.getMailbox},
		})
	}
	return a, nil
}

// RefreshPath is the configured refresh base joined with the refresh endpoint
func (a *API) RefreshPath() string {
	return path.Join("/", a.conf.SC.Get(global.ConfigRefreshBase).String(), schema.EndpointRefresh)
}

// Handler returns the router, for mounting in tests or other servers
func (a *API) Handler() http.Handler {
	return a.server.Handler()
}

// Start listens on the configured address until Stop is called
func (a *API) Start() error {
	a.logger.Infof(8601, "starting %s", global.Description)
	return a.server.Start()
}

// Serve serves on an existing listener until Stop is called
func (a *API) Serve(listener net.Listener) error {
	return a.server.Serve(listener)
}

func (a *API) Stop() error {
	return a.server.Stop()
}

// FailRefresh makes every refresh exchange fail with 401 while set
func (a *API) FailRefresh(fail bool) {
	a.failRefresh.Store(fail)
}

// RejectNext makes the next n bearer-authorized requests fail with 401
// regardless of the credential they carry
func (a *API) RejectNext(n int) {
	a.rejectNext.Store(int32(n))
}

// RefreshCount returns the number of refresh exchanges received
func (a *API) RefreshCount() int64 {
	return a.refreshCount.Load()
}

// Data exposes the data layer, for example to change token lifetimes
func (a *API) Data() *data.Data {
	return a.data
}

func (a *API) consumeReject() bool {
	for {
		n := a.rejectNext.Load()
		if n <= 0 {
			return false
		}
		if a.rejectNext.CompareAndSwap(n, n-1) {
			return true
		}
	}
}
