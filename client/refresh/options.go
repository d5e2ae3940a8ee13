/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package refresh

import (
	"errors"
	"net/http"
	"time"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/token"
	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/null"
)

// DefaultTimeout bounds a single refresh exchange
const DefaultTimeout = 30 * time.Second

func New(options ...func(*Coordinator) error) (*Coordinator, error) {
	c := &Coordinator{
		logger:  null.Logger(),
		codec:   token.New(),
		timeout: DefaultTimeout,
	}
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	// Check for mandatory fields
	if c.store == nil {
		return nil, errors.New("store is required")
	}
	if c.url == "" {
		return nil, errors.New("refresh URL is required")
	}
	if c.client == nil {
		return nil, errors.New("http client is required")
	}
	return c, nil
}

func WithLogger(logger interfaces.Logger) func(*Coordinator) error {
	return func(c *Coordinator) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		c.logger = logger
		return nil
	}
}

func WithStore(store authstore.Store) func(*Coordinator) error {
	return func(c *Coordinator) error {
		if store == nil {
			return errors.New("store is nil")
		}
		c.store = store
		return nil
	}
}

func WithCodec(codec *token.Codec) func(*Coordinator) error {
	return func(c *Coordinator) error {
		if codec == nil {
			return errors.New("codec is nil")
		}
		c.codec = codec
		return nil
	}
}

// WithHTTPClient sets the client used for the exchange. It must share the
// cookie jar of the client used for login and must not carry the bearer
// interceptor.
func WithHTTPClient(client *http.Client) func(*Coordinator) error {
	return func(c *Coordinator) error {
		if client == nil {
			return errors.New("http client is nil")
		}
		c.client = client
		return nil
	}
}

// WithURL sets the absolute refresh endpoint URL
func WithURL(url string) func(*Coordinator) error {
	return func(c *Coordinator) error {
		if url == "" {
			return errors.New("refresh URL is empty")
		}
		c.url = url
		return nil
	}
}

func WithTimeout(timeout time.Duration) func(*Coordinator) error {
	return func(c *Coordinator) error {
		if timeout <= 0 {
			return errors.New("timeout must be positive")
		}
		c.timeout = timeout
		return nil
	}
}
