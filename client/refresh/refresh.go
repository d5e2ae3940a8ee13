/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package refresh exchanges the ambient refresh session for a new bearer
// credential. Concurrent callers share one in-flight exchange.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/autherr"
	"github.com/UnifyEM/UEMSession/client/token"
	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// Event is delivered to listeners after the store has been updated
type Event int

const (
	EventRefreshed Event = iota + 1
	EventTerminated
)

func (e Event) String() string {
	switch e {
	case EventRefreshed:
		return "refreshed"
	case EventTerminated:
		return "terminated"
	}
	return "unknown"
}

type Coordinator struct {
	logger  interfaces.Logger
	store   authstore.Store
	codec   *token.Codec
	client  *http.Client
	url     string
	timeout time.Duration

	group singleflight.Group

	// mu serializes every write to the credential slot made by an
	// exchange or by Replace. generation changes whenever the session is
	// replaced so that an exchange started for an older session never
	// writes over a newer one.
	mu         sync.Mutex
	generation uint64

	exchanges atomic.Int64

	lMu       sync.Mutex
	listeners []func(Event)
}

// Refresh returns a fresh credential. The exchange does not inherit the
// caller's cancellation: if ctx ends first the caller stops waiting, but
// the exchange still completes and its result is stored for the next caller.
func (c *Coordinator) Refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan("refresh-"+strconv.FormatUint(gen, 10), func() (any, error) {
		return c.exchange(detached, gen)
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Replace bumps the session generation and runs fn while holding the
// credential write lock. The session facade uses it for login, logout and
// every other write that starts or ends a session.
func (c *Coordinator) Replace(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return fn()
}

// Locked runs fn while holding the credential write lock without replacing
// the session. Writes that amend the current session, such as a role change
// after email verification, use it so they cannot interleave with a refresh
// commit or termination.
func (c *Coordinator) Locked(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}

// Generation returns the current session generation
func (c *Coordinator) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Exchanges returns the number of refresh exchanges sent to the server
func (c *Coordinator) Exchanges() int64 {
	return c.exchanges.Load()
}

// OnChange registers a listener that is called after every successful
// refresh and every session termination
func (c *Coordinator) OnChange(fn func(Event)) {
	if fn == nil {
		return
	}
	c.lMu.Lock()
	defer c.lMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Coordinator) notify(e Event) {
	c.lMu.Lock()
	listeners := make([]func(Event), len(c.listeners))
	copy(listeners, c.listeners)
	c.lMu.Unlock()

	for _, fn := range listeners {
		fn(e)
	}
}

// exchange performs one network round trip and commits the outcome
func (c *Coordinator) exchange(ctx context.Context, gen uint64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	n := c.exchanges.Add(1)
	logInfo := fields.NewFields(
		fields.NewField("generation", gen),
		fields.NewField("exchange", n))
	c.logger.Info(8301, "attempting access token refresh", logInfo)

	credential, err := c.post(ctx)

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		c.logger.Warning(8302, "refresh result discarded, session was replaced", logInfo.Clone().AppendError(err))
		return "", &autherr.RefreshError{Cause: autherr.ErrSessionReplaced}
	}

	if err != nil {
		c.generation++
		clearErr := authstore.ClearSession(c.store)
		c.mu.Unlock()

		logInfo.AppendError(err)
		if clearErr != nil {
			logInfo.AppendKV("clear_error", clearErr.Error())
		}
		c.logger.Error(8303, "access token refresh failed, session terminated", logInfo)
		c.notify(EventTerminated)
		return "", &autherr.RefreshError{Cause: err}
	}

	storeErr := c.store.Set(authstore.SlotCredential, credential)
	c.mu.Unlock()

	if storeErr != nil {
		// The credential is still valid for the callers waiting on it
		c.logger.Error(8304, "refreshed credential could not be stored", logInfo.Clone().AppendError(storeErr))
	}

	if c.codec.IsExpired(credential) {
		c.logger.Warning(8305, "server issued a credential that is already expired by the local clock", logInfo)
	}

	c.logger.Info(8306, "access token refresh successful", logInfo)
	c.notify(EventRefreshed)
	return credential, nil
}

// errEmptyCredential is returned when the server answers 200 without a token
var errEmptyCredential = errors.New("server returned an empty credential")

func wrapTransport(err error) error {
	return fmt.Errorf("refresh request failed: %w", err)
}
