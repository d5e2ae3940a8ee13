/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package devserver runs the development auth server as a service: the API
// is served in the background and expired refresh sessions and tickets are
// pruned on a timer.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/uemservice"
	"github.com/UnifyEM/UEMSession/server/api"
	"github.com/UnifyEM/UEMSession/server/data"
	"github.com/UnifyEM/UEMSession/server/global"
)

type Server struct {
	conf   *global.ServerConfig
	logger interfaces.Logger
	data   *data.Data
	api    *api.API

	mu       sync.Mutex
	listener net.Listener
	served   chan struct{}
}

// New opens the database and builds the API without starting it
func New(conf *global.ServerConfig, logger interfaces.Logger, options ...func(*data.Data) error) (*Server, error) {
	if conf == nil || logger == nil {
		return nil, errors.New("config and logger are required")
	}

	d, err := data.New(conf, logger, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to open data: %w", err)
	}

	a, err := api.New(conf, d, logger)
	if err != nil {
		d.Close()
		return nil, err
	}

	return &Server{conf: conf, logger: logger, data: d, api: a}, nil
}

// Run serves until ctx ends or the process is told to stop
func (s *Server) Run(ctx context.Context) error {
	svc, err := uemservice.New(
		uemservice.WithServiceName(global.Name),
		uemservice.WithServiceVersion(global.Version),
		uemservice.WithServiceBuild(global.Build),
		uemservice.WithLogger(s.logger),
		uemservice.WithTaskInterval(s.conf.SC.Get(global.ConfigPruneInterval).Seconds()),
		uemservice.WithStartFunc(s.start),
		uemservice.WithTasksFunc(s.prune),
		uemservice.WithStopFunc(s.stop),
		uemservice.WithSEid(global.SEid+80))
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

// API returns the running API, for fault injection
func (s *Server) API() *api.API {
	return s.api
}

// Addr returns the listening address once the server has started
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// start binds the listener synchronously so that address errors are
// reported by Run, then serves in the background
func (s *Server) start(_ context.Context, logger interfaces.Logger) error {
	listen := s.conf.SC.Get(global.ConfigListen).String()
	listener, err := net.Listen("tcp", listen)
	if err != nil {
		s.data.Close()
		return fmt.Errorf("unable to listen on %s: %w", listen, err)
	}

	served := make(chan struct{})
	s.mu.Lock()
	s.listener = listener
	s.served = served
	s.mu.Unlock()

	go func() {
		defer close(served)
		if err := s.api.Serve(listener); err != nil {
			logger.Error(8681, "server failed", fields.NewFields().AppendError(err))
		}
	}()

	logger.Info(8682, "development auth server listening", fields.NewFields(
		fields.NewField("listen", listener.Addr().String()),
		fields.NewField("refresh", s.api.RefreshPath())))
	return nil
}

func (s *Server) prune(logger interfaces.Logger) {
	n, err := s.data.Prune()
	if err != nil {
		logger.Error(8683, "unable to prune expired records", fields.NewFields().AppendError(err))
		return
	}
	if n > 0 {
		logger.Info(8684, "pruned expired records", fields.NewFields(fields.NewField("count", n)))
	}
}

func (s *Server) stop(logger interfaces.Logger) {
	if err := s.api.Stop(); err != nil {
		// Serve may not have installed its http.Server yet
		s.mu.Lock()
		listener := s.listener
		s.mu.Unlock()
		if listener != nil {
			_ = listener.Close()
		}
		logger.Warning(8685, "server stop", fields.NewFields().AppendError(err))
	}

	s.mu.Lock()
	served := s.served
	s.mu.Unlock()
	if served != nil {
		<-served
	}

	s.data.Close()

	if s.conf.C != nil {
		// An unbacked configuration has nothing to save
		if err := s.conf.C.Checkpoint(); err != nil {
			logger.Debug(8686, "configuration not saved", fields.NewFields().AppendError(err))
		}
	}
}
