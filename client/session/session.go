/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package session is the application-facing entry point. It exposes the
// observable session state and the account operations, and issues
// authorized application calls through the interceptors.
package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"path"
	"sync"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/refresh"
	"github.com/UnifyEM/UEMSession/client/token"
	"github.com/UnifyEM/UEMSession/client/transport"
	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/null"
	"github.com/UnifyEM/UEMSession/common/schema"
)

// State mirrors the persisted session. The store remains the source of truth.
// Authenticated is advisory and only refreshed at operation boundaries.
type State struct {
	Principal     *schema.Principal
	Credential    string
	Role          string
	Authenticated bool
}

type Session struct {
	logger      interfaces.Logger
	server      string
	store       authstore.Store
	codec       *token.Codec
	coordinator *refresh.Coordinator
	client      *http.Client

	mu    sync.RWMutex
	state State

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(State)
}

func New(opts ...func(*options) error) (*Session, error) {
	o := &options{
		refreshBase:    schema.DefaultRefreshBase,
		codec:          token.New(),
		logger:         null.Logger(),
		base:           http.DefaultTransport,
		refreshTimeout: refresh.DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.server == "" {
		return nil, errors.New("server URL is required")
	}
	if o.store == nil {
		return nil, errors.New("store is required")
	}
	if o.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		o.jar = jar
	}

	// The refresh exchange shares the cookie jar but never the interceptors
	coordinator, err := refresh.New(
		refresh.WithStore(o.store),
		refresh.WithCodec(o.codec),
		refresh.WithLogger(o.logger),
		refresh.WithHTTPClient(&http.Client{Transport: o.base, Jar: o.jar}),
		refresh.WithURL(o.server+path.Join("/", o.refreshBase, schema.EndpointRefresh)),
		refresh.WithTimeout(o.refreshTimeout))
	if err != nil {
		return nil, err
	}

	tr, err := transport.New(
		transport.WithBase(o.base),
		transport.WithStore(o.store),
		transport.WithCodec(o.codec),
		transport.WithRefresher(coordinator),
		transport.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	s := &Session{
		logger:      o.logger,
		server:      o.server,
		store:       o.store,
		codec:       o.codec,
		coordinator: coordinator,
		client:      tr.Client(o.jar),
		subs:        make(map[int]func(State)),
	}

	coordinator.OnChange(func(e refresh.Event) {
		s.logger.Debug(8501, "session changed by refresh coordinator", fields.NewFields(fields.NewField("event", e.String())))
		s.Restore()
	})

	s.Restore()
	return s, nil
}

// State returns a snapshot of the session
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to receive every new state. The returned function
// removes the subscription.
func (s *Session) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Restore rebuilds the state from the store and notifies subscribers. It
// runs on construction so a persisted session survives a restart.
func (s *Session) Restore() State {
	st := State{}
	if credential, ok := s.store.Get(authstore.SlotCredential); ok {
		st.Credential = credential
	}
	if role, ok := s.store.Get(authstore.SlotRole); ok {
		st.Role = role
	}
	if raw, ok := s.store.Get(authstore.SlotPrincipal); ok {
		var p schema.Principal
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			st.Principal = &p
		} else {
			s.logger.Warning(8502, "stored principal is unreadable", fields.NewFields().AppendError(err))
		}
	}
	if authenticated, ok := s.store.Get(authstore.SlotAuthenticated); ok {
		st.Authenticated = authenticated == "true"
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	s.notify(st)
	return st
}

func (s *Session) notify(st State) {
	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// Client returns an http.Client whose requests pass through the
// interceptors and share the session's cookie jar
func (s *Session) Client() *http.Client {
	return s.client
}

// Do sends an application request through the interceptors. Redirects
// followed for req share its single retry.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	if _, ok := transport.MarkerFrom(req.Context()); !ok {
		ctx, _ := transport.WithRetryMarker(req.Context())
		req = req.WithContext(ctx)
	}
	return s.client.Do(req)
}

// Generation returns the session generation. It changes on every login,
// signup and logout.
func (s *Session) Generation() uint64 {
	return s.coordinator.Generation()
}

// Codec returns the codec used to judge credential expiry
func (s *Session) Codec() *token.Codec {
	return s.codec
}
