/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package transport

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// RetryMarker belongs to one originating request. It is set the first time
// a refresh-and-retry is started for that request and is never reset.
// http.Client builds redirect hops from the caller's context, so redirects
// share the marker only when the caller attached it with WithRetryMarker
// before calling Do. Session does this for every call.
type RetryMarker struct {
	ID      string
	retried atomic.Bool
}

// Retried reports whether a refresh-and-retry has already been started
func (m *RetryMarker) Retried() bool {
	return m.retried.Load()
}

// claim sets the marker. Only the first caller gets true.
func (m *RetryMarker) claim() bool {
	return m.retried.CompareAndSwap(false, true)
}

type ctxKey int

const (
	markerKey ctxKey = iota
	anonymousKey
)

// WithRetryMarker returns a context carrying a RetryMarker. If ctx already
// carries one it is returned unchanged.
func WithRetryMarker(ctx context.Context) (context.Context, *RetryMarker) {
	if m, ok := MarkerFrom(ctx); ok {
		return ctx, m
	}
	m := &RetryMarker{ID: uuid.NewString()}
	return context.WithValue(ctx, markerKey, m), m
}

func MarkerFrom(ctx context.Context) (*RetryMarker, bool) {
	m, ok := ctx.Value(markerKey).(*RetryMarker)
	return m, ok && m != nil
}

// Anonymous marks requests made with ctx as credential-less. They are sent
// without an Authorization header and never trigger a refresh. Signup and
// login use it.
func Anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey, true)
}

func IsAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey).(bool)
	return v
}
