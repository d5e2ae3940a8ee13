/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/autherr"
	"github.com/UnifyEM/UEMSession/common/schema"
)

// refreshServer answers the refresh endpoint. Each successful exchange
// mints a distinct credential so tests can tell exchanges apart.
type refreshServer struct {
	*httptest.Server
	calls   atomic.Int64
	fail    atomic.Bool
	entered chan struct{}
	release chan struct{}
	sawAuth atomic.Bool
	sawJar  atomic.Bool
}

func newRefreshServer(t *testing.T, gated bool) *refreshServer {
	t.Helper()
	rs := &refreshServer{}
	if gated {
		rs.entered = make(chan struct{}, 16)
		rs.release = make(chan struct{})
	}

	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := rs.calls.Add(1)
		if r.Header.Get("Authorization") != "" {
			rs.sawAuth.Store(true)
		}
		if _, err := r.Cookie(schema.RefreshCookie); err == nil {
			rs.sawJar.Store(true)
		}
		if rs.entered != nil {
			rs.entered <- struct{}{}
			<-rs.release
		}

		w.Header().Set("Content-Type", "application/json")
		if rs.fail.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(schema.APIGenericResponse{
				Status: schema.APIStatusExpired, Code: http.StatusUnauthorized, Details: "refresh session expired"})
			return
		}
		_ = json.NewEncoder(w).Encode(schema.APITokenRefreshResponse{
			Status: schema.APIStatusOK, Code: http.StatusOK, AccessToken: mint(t, fmt.Sprintf("exchange-%d", n), time.Hour)})
	}))
	t.Cleanup(rs.Close)
	return rs
}

func mint(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func newCoordinator(t *testing.T, rs *refreshServer, store authstore.Store) *Coordinator {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	u, err := url.Parse(rs.URL)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: schema.RefreshCookie, Value: "refresh-session", Path: "/"}})

	c, err := New(
		WithStore(store),
		WithHTTPClient(&http.Client{Jar: jar}),
		WithURL(rs.URL+schema.DefaultRefreshBase+schema.EndpointRefresh),
		WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func seed(t *testing.T, store authstore.Store) {
	t.Helper()
	require.NoError(t, store.Update(func(w authstore.Writer) error {
		_ = w.Set(authstore.SlotCredential, "stale")
		_ = w.Set(authstore.SlotPrincipal, `{"id":"U-1"}`)
		_ = w.Set(authstore.SlotRole, schema.RoleUser)
		return w.Set(authstore.SlotAuthenticated, "true")
	}))
}

func TestNewRequiresMandatoryFields(t *testing.T) {
	_, err := New(WithURL("http://localhost/session/refresh"), WithHTTPClient(http.DefaultClient))
	assert.Error(t, err)

	_, err = New(WithStore(authstore.NewMemory()), WithHTTPClient(http.DefaultClient))
	assert.Error(t, err)

	_, err = New(WithStore(authstore.NewMemory()), WithTimeout(0))
	assert.Error(t, err)
}

func TestRefreshStoresCredential(t *testing.T) {
	rs := newRefreshServer(t, false)
	store := authstore.NewMemory()
	seed(t, store)
	c := newCoordinator(t, rs, store)

	var events []Event
	c.OnChange(func(e Event) { events = append(events, e) })

	credential, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, credential)

	stored, ok := store.Get(authstore.SlotCredential)
	require.True(t, ok)
	assert.Equal(t, credential, stored)

	role, _ := store.Get(authstore.SlotRole)
	assert.Equal(t, schema.RoleUser, role)

	assert.Equal(t, []Event{EventRefreshed}, events)
	assert.True(t, rs.sawJar.Load(), "refresh must carry the ambient cookie")
	assert.False(t, rs.sawAuth.Load(), "refresh must not carry a bearer credential")
}

func TestConcurrentCallersShareOneExchange(t *testing.T) {
	rs := newRefreshServer(t, true)
	store := authstore.NewMemory()
	seed(t, store)
	c := newCoordinator(t, rs, store)

	const n = 8
	var started, finished sync.WaitGroup
	started.Add(n)
	finished.Add(n)
	results := make([]string, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer finished.Done()
			started.Done()
			results[i], errs[i] = c.Refresh(context.Background())
		}(i)
	}

	<-rs.entered
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(rs.release)
	finished.Wait()

	assert.Equal(t, int64(1), rs.calls.Load())
	assert.Equal(t, int64(1), c.Exchanges())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
}

func TestSequentialRefreshesAreSeparateExchanges(t *testing.T) {
	rs := newRefreshServer(t, false)
	c := newCoordinator(t, rs, authstore.NewMemory())

	first, err := c.Refresh(context.Background())
	require.NoError(t, err)
	second, err := c.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, int64(2), rs.calls.Load())
}

func TestRefreshFailureTerminatesSession(t *testing.T) {
	rs := newRefreshServer(t, false)
	rs.fail.Store(true)
	store := authstore.NewMemory()
	seed(t, store)
	c := newCoordinator(t, rs, store)

	var events []Event
	c.OnChange(func(e Event) { events = append(events, e) })
	before := c.Generation()

	_, err := c.Refresh(context.Background())
	require.Error(t, err)

	var re *autherr.RefreshError
	require.True(t, errors.As(err, &re))
	var apiErr *autherr.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Code)
	assert.Equal(t, "refresh session expired", apiErr.Details)

	for _, slot := range []authstore.Slot{authstore.SlotCredential, authstore.SlotPrincipal, authstore.SlotRole} {
		_, ok := store.Get(slot)
		assert.False(t, ok, slot)
	}
	authenticated, _ := store.Get(authstore.SlotAuthenticated)
	assert.Equal(t, "false", authenticated)

	assert.Equal(t, []Event{EventTerminated}, events)
	assert.Greater(t, c.Generation(), before)
}

func TestUnreachableServerTerminatesSession(t *testing.T) {
	store := authstore.NewMemory()
	seed(t, store)
	c, err := New(
		WithStore(store),
		WithHTTPClient(&http.Client{}),
		WithURL("http://127.0.0.1:1/session/refresh"),
		WithTimeout(2*time.Second))
	require.NoError(t, err)

	_, err = c.Refresh(context.Background())
	assert.True(t, autherr.IsRefreshFailure(err))

	_, ok := store.Get(authstore.SlotCredential)
	assert.False(t, ok)
}

func TestCallerCancellationDoesNotAbortExchange(t *testing.T) {
	rs := newRefreshServer(t, true)
	store := authstore.NewMemory()
	seed(t, store)
	c := newCoordinator(t, rs, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Refresh(ctx)
		done <- err
	}()

	<-rs.entered
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(rs.release)
	require.Eventually(t, func() bool {
		v, _ := store.Get(authstore.SlotCredential)
		return v != "stale"
	}, 2*time.Second, 10*time.Millisecond)

	authenticated, _ := store.Get(authstore.SlotAuthenticated)
	assert.Equal(t, "true", authenticated)
}

func TestReplacedSessionIsNotOverwritten(t *testing.T) {
	rs := newRefreshServer(t, true)
	store := authstore.NewMemory()
	seed(t, store)
	c := newCoordinator(t, rs, store)

	done := make(chan error, 1)
	go func() {
		_, err := c.Refresh(context.Background())
		done <- err
	}()

	<-rs.entered
	require.NoError(t, c.Replace(func() error {
		return store.Set(authstore.SlotCredential, "fresh-login")
	}))
	close(rs.release)

	err := <-done
	assert.ErrorIs(t, err, autherr.ErrSessionReplaced)

	v, _ := store.Get(authstore.SlotCredential)
	assert.Equal(t, "fresh-login", v)
	authenticated, _ := store.Get(authstore.SlotAuthenticated)
	assert.Equal(t, "true", authenticated)
}

func TestReplacedSessionSurvivesFailedExchange(t *testing.T) {
	rs := newRefreshServer(t, true)
	rs.fail.Store(true)
	store := authstore.NewMemory()
	seed(t, store)
	c := newCoordinator(t, rs, store)

	done := make(chan error, 1)
	go func() {
		_, err := c.Refresh(context.Background())
		done <- err
	}()

	<-rs.entered
	require.NoError(t, c.Replace(func() error {
		return store.Set(authstore.SlotCredential, "fresh-login")
	}))
	close(rs.release)

	assert.ErrorIs(t, <-done, autherr.ErrSessionReplaced)
	v, ok := store.Get(authstore.SlotCredential)
	assert.True(t, ok)
	assert.Equal(t, "fresh-login", v)
}
