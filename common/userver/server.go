/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package userver implements an HTTP server using the standard Go libraries
// and gorilla/mux. Each route has either a traditional http.Handler or a
// JHandler that returns an object to be marshalled to JSON.
package userver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/null"
)

// New returns a HServer struct with default values and options applied
func New(options ...func(*HServer) error) (*HServer, error) {
	s := &HServer{
		Listen:          "127.0.0.1:8080",
		HTTPTimeout:     60,
		HTTPIdleTimeout: 60,
		HandlerTimeout:  60,
		MaxConcurrent:   100,
		HealthHandler:   true,
		DefaultHeaders:  true,
		Logger:          null.Logger(),
	}

	// Process options (see options.go)
	for _, op := range options {
		err := op(s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler builds the router from the registered routes. It can be served
// by Start or mounted elsewhere, for example in an httptest.Server.
func (s *HServer) Handler() http.Handler {
	s.once.Do(func() {
		if s.DefaultHeaders {
			s.AddHeader("Cache-Control", "no-cache, no-store, must-revalidate")
			s.AddHeader("Pragma", "no-cache")
			s.AddHeader("Expires", "0")
		}

		if s.HealthHandler {
			s.AddRoute(Route{
				Name:     "health",
				Methods:  []string{"GET"},
				Pattern:  "/health",
				JHandler: s.HandlerHealth,
			})
		}

		router := mux.NewRouter()
		for _, route := range s.Routes {
			// Use JHandler if set otherwise use Handler
			if route.JHandler != nil {
				router.Handle(route.Pattern, s.Wrapper(route.Name, s.JWrapper(route.Name, route.JHandler), route.AuthFunc)).Methods(route.Methods...)
			} else if route.Handler != nil {
				router.Handle(route.Pattern, s.Wrapper(route.Name, route.Handler, route.AuthFunc)).Methods(route.Methods...)
			}
		}

		router.NotFoundHandler = s.Wrapper("Handler404", s.JWrapper("Handler404", s.Handler404), nil)
		router.MethodNotAllowedHandler = s.Wrapper("Handler405", s.JWrapper("Handler405", s.Handler405), nil)
		s.router = router
	})
	return s.router
}

// Start listens on s.Listen and serves until Stop is called
func (s *HServer) Start() error {
	listener, err := net.Listen("tcp", s.Listen)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener. If MaxConcurrent > 0 the listener
// is wrapped so that at most that many connections are accepted at once.
func (s *HServer) Serve(listener net.Listener) error {
	s.Logger.Info(s.SEid+1, "starting server", fields.NewFields(fields.NewField("listen", listener.Addr().String())))

	if s.MaxConcurrent > 0 {
		listener = netutil.LimitListener(listener, s.MaxConcurrent)
	}

	serv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Duration(s.HTTPTimeout) * time.Second,
		ReadTimeout:       time.Duration(s.HTTPTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.HTTPTimeout) * time.Second,
		IdleTimeout:       time.Duration(s.HTTPIdleTimeout) * time.Second,
	}

	s.mu.Lock()
	s.server = serv
	s.mu.Unlock()

	err := serv.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		s.Logger.Info(s.SEid+2, "server stopped", nil)
		return nil
	}
	return err
}

// Stop shuts the server down, giving in-flight requests 10 seconds to finish
func (s *HServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.mu.Lock()
	serv := s.server
	s.mu.Unlock()

	if serv == nil {
		return errors.New("server is not running")
	}

	if err := serv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// AddRoutes adds routes to the router
func (s *HServer) AddRoutes(routes Routes) {
	for _, route := range routes {
		s.AddRoute(route)
	}
}

// AddRoute adds a route. Routes must be added before Handler is first called.
func (s *HServer) AddRoute(route Route) {
	s.Routes = append(s.Routes, route)
}

// AddHeader adds a header to every response
func (s *HServer) AddHeader(key, value string) {
	s.Headers = append(s.Headers, Header{key, value})
}
