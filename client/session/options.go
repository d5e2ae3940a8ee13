/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package session

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/token"
	"github.com/UnifyEM/UEMSession/common/interfaces"
)

type options struct {
	server         string
	refreshBase    string
	store          authstore.Store
	codec          *token.Codec
	logger         interfaces.Logger
	base           http.RoundTripper
	jar            http.CookieJar
	refreshTimeout time.Duration
}

// WithServerURL sets the base URL all endpoints are relative to
func WithServerURL(server string) func(*options) error {
	return func(o *options) error {
		u, err := url.Parse(server)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("server URL must be absolute")
		}
		o.server = strings.TrimRight(server, "/")
		return nil
	}
}

// WithRefreshBase sets the path prefix of the refresh endpoint
func WithRefreshBase(base string) func(*options) error {
	return func(o *options) error {
		if base == "" {
			return errors.New("refresh base is empty")
		}
		o.refreshBase = base
		return nil
	}
}

func WithStore(store authstore.Store) func(*options) error {
	return func(o *options) error {
		if store == nil {
			return errors.New("store is nil")
		}
		o.store = store
		return nil
	}
}

// WithLeeway treats credentials as expired this long before their exp claim
func WithLeeway(leeway time.Duration) func(*options) error {
	return func(o *options) error {
		if leeway < 0 {
			return errors.New("leeway must not be negative")
		}
		o.codec = token.New(token.WithLeeway(leeway))
		return nil
	}
}

func WithCodec(codec *token.Codec) func(*options) error {
	return func(o *options) error {
		if codec == nil {
			return errors.New("codec is nil")
		}
		o.codec = codec
		return nil
	}
}

func WithLogger(logger interfaces.Logger) func(*options) error {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		o.logger = logger
		return nil
	}
}

// WithBaseTransport sets the RoundTripper used for dispatch underneath the interceptors
func WithBaseTransport(base http.RoundTripper) func(*options) error {
	return func(o *options) error {
		if base == nil {
			return errors.New("base transport is nil")
		}
		o.base = base
		return nil
	}
}

// WithCookieJar sets the jar that carries the refresh session. It is shared
// by application calls and the refresh exchange.
func WithCookieJar(jar http.CookieJar) func(*options) error {
	return func(o *options) error {
		if jar == nil {
			return errors.New("cookie jar is nil")
		}
		o.jar = jar
		return nil
	}
}

func WithRefreshTimeout(timeout time.Duration) func(*options) error {
	return func(o *options) error {
		if timeout <= 0 {
			return errors.New("refresh timeout must be positive")
		}
		o.refreshTimeout = timeout
		return nil
	}
}
