/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package transport

import (
	"errors"
	"net/http"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/token"
	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/null"
)

type options struct {
	base      http.RoundTripper
	store     authstore.Store
	codec     *token.Codec
	refresher Refresher
	logger    interfaces.Logger
}

func New(opts ...func(*options) error) (*Transport, error) {
	o := &options{
		base:   http.DefaultTransport,
		codec:  token.New(),
		logger: null.Logger(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.store == nil {
		return nil, errors.New("store is required")
	}
	if o.refresher == nil {
		return nil, errors.New("refresher is required")
	}

	return &Transport{
		base: o.base,
		request: &RequestInterceptor{
			store:     o.store,
			codec:     o.codec,
			refresher: o.refresher,
			logger:    o.logger,
		},
		response: &ResponseInterceptor{
			refresher: o.refresher,
			logger:    o.logger,
		},
	}, nil
}

// WithBase sets the RoundTripper that performs the actual dispatch
func WithBase(base http.RoundTripper) func(*options) error {
	return func(o *options) error {
		if base == nil {
			return errors.New("base transport is nil")
		}
		o.base = base
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

func WithCodec(codec *token.Codec) func(*options) error {
	return func(o *options) error {
		if codec == nil {
			return errors.New("codec is nil")
		}
		o.codec = codec
		return nil
	}
}

func WithRefresher(r Refresher) func(*options) error {
	return func(o *options) error {
		if r == nil {
			return errors.New("refresher is nil")
		}
		o.refresher = r
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
