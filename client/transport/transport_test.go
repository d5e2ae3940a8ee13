/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/autherr"
	"github.com/UnifyEM/UEMSession/client/refresh"
)

type fakeRefresher struct {
	store      authstore.Store
	credential string
	err        error
	calls      atomic.Int64
}

func (f *fakeRefresher) Refresh(_ context.Context) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		// A failed exchange ends the session, a replaced one leaves it alone
		if !errors.Is(f.err, autherr.ErrSessionReplaced) {
			_ = authstore.ClearSession(f.store)
		}
		return "", f.err
	}
	_ = f.store.Set(authstore.SlotCredential, f.credential)
	return f.credential, nil
}

// recorder is an API server that accepts only the credentials in valid
type recorder struct {
	*httptest.Server
	mu     sync.Mutex
	valid  map[string]bool
	hits   int
	auth   []string
	bodies []string
}

func newRecorder(t *testing.T, valid ...string) *recorder {
	t.Helper()
	rec := &recorder{valid: map[string]bool{}}
	for _, v := range valid {
		rec.valid[v] = true
	}
	rec.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		h := r.Header.Get("Authorization")

		rec.mu.Lock()
		rec.hits++
		rec.auth = append(rec.auth, h)
		rec.bodies = append(rec.bodies, string(body))
		ok := rec.valid[strings.TrimPrefix(h, "Bearer ")]
		rec.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","code":200}`))
	}))
	t.Cleanup(rec.Close)
	return rec
}

func (rec *recorder) Hits() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.hits
}

func (rec *recorder) Auth() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.auth...)
}

func (rec *recorder) Bodies() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.bodies...)
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

func newClient(t *testing.T, store authstore.Store, r Refresher) *http.Client {
	t.Helper()
	tr, err := New(WithStore(store), WithRefresher(r))
	require.NoError(t, err)
	return tr.Client(nil)
}

func post(t *testing.T, ctx context.Context, c *http.Client, url, body string) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	resp, err := c.Do(req)
	if resp != nil {
		t.Cleanup(func() { _ = resp.Body.Close() })
	}
	return resp, err
}

func TestNoCredentialDispatchesUnauthenticated(t *testing.T) {
	store := authstore.NewMemory()
	rec := newRecorder(t)
	r := &fakeRefresher{store: store, credential: "unused"}

	resp, err := post(t, context.Background(), newClient(t, store, r), rec.URL, "{}")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "", rec.Auth()[0])
	assert.Equal(t, int64(0), r.calls.Load(), "no bearer was sent, so nothing is refreshed")
	assert.Equal(t, 1, rec.Hits())
}

func TestValidCredentialIsAttached(t *testing.T) {
	store := authstore.NewMemory()
	valid := mint(t, "U-1", time.Hour)
	require.NoError(t, store.Set(authstore.SlotCredential, valid))
	rec := newRecorder(t, valid)
	r := &fakeRefresher{store: store}

	resp, err := post(t, context.Background(), newClient(t, store, r), rec.URL, "{}")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer "+valid, rec.Auth()[0])
	assert.Equal(t, int64(0), r.calls.Load())
}

func TestExpiredCredentialRefreshedBeforeDispatch(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, mint(t, "U-1", -time.Minute)))
	fresh := mint(t, "U-1", time.Hour)
	rec := newRecorder(t, fresh)
	r := &fakeRefresher{store: store, credential: fresh}

	resp, err := post(t, context.Background(), newClient(t, store, r), rec.URL, "{}")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), r.calls.Load())
	assert.Equal(t, 1, rec.Hits())
	assert.Equal(t, "Bearer "+fresh, rec.Auth()[0])
}

func TestMalformedCredentialTreatedAsExpired(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, "not-a-token"))
	fresh := mint(t, "U-1", time.Hour)
	rec := newRecorder(t, fresh)
	r := &fakeRefresher{store: store, credential: fresh}

	_, err := post(t, context.Background(), newClient(t, store, r), rec.URL, "{}")
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.calls.Load())
}

func TestRefreshFailureBlocksDispatch(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, mint(t, "U-1", -time.Minute)))
	rec := newRecorder(t)
	r := &fakeRefresher{store: store, err: &autherr.RefreshError{Cause: errors.New("refresh session expired")}}

	_, err := post(t, context.Background(), newClient(t, store, r), rec.URL, "{}")
	require.Error(t, err)

	var ae *autherr.AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, autherr.ReasonRefreshFailed, ae.Reason)
	assert.Equal(t, 0, rec.Hits())

	_, ok := store.Get(authstore.SlotCredential)
	assert.False(t, ok)
}

func TestRefreshFailureKeepsNewerLogin(t *testing.T) {
	store := authstore.NewMemory()
	expired := mint(t, "U-1", -time.Minute)
	require.NoError(t, store.Set(authstore.SlotCredential, expired))

	refreshSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":401,"details":"refresh session expired"}`))
	}))
	defer refreshSrv.Close()

	coord, err := refresh.New(
		refresh.WithStore(store),
		refresh.WithHTTPClient(refreshSrv.Client()),
		refresh.WithURL(refreshSrv.URL))
	require.NoError(t, err)

	// A login lands right after the failed exchange ended the old session
	newer := mint(t, "U-2", time.Hour)
	coord.OnChange(func(e refresh.Event) {
		if e != refresh.EventTerminated {
			return
		}
		_ = coord.Replace(func() error {
			return store.Update(func(w authstore.Writer) error {
				if err := w.Set(authstore.SlotCredential, newer); err != nil {
					return err
				}
				return w.Set(authstore.SlotAuthenticated, "true")
			})
		})
	})

	rec := newRecorder(t)
	_, err = post(t, context.Background(), newClient(t, store, coord), rec.URL, "{}")
	assert.True(t, autherr.IsRefreshFailure(err))
	assert.Equal(t, 0, rec.Hits())

	credential, ok := store.Get(authstore.SlotCredential)
	require.True(t, ok, "the newer login's credential must survive")
	assert.Equal(t, newer, credential)
	authenticated, _ := store.Get(authstore.SlotAuthenticated)
	assert.Equal(t, "true", authenticated)
}

func TestReplacedSessionIsNotCleared(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, mint(t, "U-1", -time.Minute)))
	rec := newRecorder(t)
	r := &fakeRefresher{store: store, err: &autherr.RefreshError{Cause: autherr.ErrSessionReplaced}}

	_, err := post(t, context.Background(), newClient(t, store, r), rec.URL, "{}")
	assert.True(t, autherr.IsRefreshFailure(err))

	_, ok := store.Get(authstore.SlotCredential)
	assert.True(t, ok)
}

func TestRejectedRequestRetriedOnceWithBody(t *testing.T) {
	store := authstore.NewMemory()
	revoked := mint(t, "U-1", time.Hour)
	require.NoError(t, store.Set(authstore.SlotCredential, revoked))
	fresh := mint(t, "U-1", 2*time.Hour)
	rec := newRecorder(t, fresh)
	r := &fakeRefresher{store: store, credential: fresh}

	resp, err := post(t, context.Background(), newClient(t, store, r), rec.URL, `{"name":"report"}`)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), r.calls.Load())
	require.Equal(t, 2, rec.Hits())
	assert.Equal(t, "Bearer "+revoked, rec.Auth()[0])
	assert.Equal(t, "Bearer "+fresh, rec.Auth()[1])
	assert.Equal(t, rec.Bodies()[0], rec.Bodies()[1])
}

func TestSecondRejectionIsFinal(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, mint(t, "U-1", time.Hour)))
	rec := newRecorder(t)
	r := &fakeRefresher{store: store, credential: mint(t, "U-1", 2*time.Hour)}

	resp, err := post(t, context.Background(), newClient(t, store, r), rec.URL, "{}")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int64(1), r.calls.Load())
	assert.Equal(t, 2, rec.Hits())
}

func TestForbiddenTriggersRetry(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, mint(t, "U-1", time.Hour)))
	fresh := mint(t, "U-1", 2*time.Hour)

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := &fakeRefresher{store: store, credential: fresh}
	resp, err := post(t, context.Background(), newClient(t, store, r), srv.URL, "{}")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), hits.Load())
}

func TestRetryRefreshFailure(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, mint(t, "U-1", time.Hour)))
	rec := newRecorder(t)
	r := &fakeRefresher{store: store, err: &autherr.RefreshError{Cause: errors.New("denied")}}

	_, err := post(t, context.Background(), newClient(t, store, r), rec.URL, "{}")
	var ae *autherr.AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, autherr.ReasonRefreshFailed, ae.Reason)
	assert.Equal(t, 1, rec.Hits())
}

func TestAnonymousRequestsNeverRefresh(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, mint(t, "U-1", -time.Minute)))
	rec := newRecorder(t)
	r := &fakeRefresher{store: store, credential: "unused"}

	resp, err := post(t, Anonymous(context.Background()), newClient(t, store, r), rec.URL, "{}")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "", rec.Auth()[0])
	assert.Equal(t, int64(0), r.calls.Load())
}

// redirectServer rejects the first hit on /a, then redirects /a to /b.
// /b rejects everything.
func redirectServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hitsA atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) {
		if hitsA.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, "/b", http.StatusFound)
	})
	mux.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hitsA
}

func TestRedirectSharesRetryMarker(t *testing.T) {
	store := authstore.NewMemory()
	require.NoError(t, store.Set(authstore.SlotCredential, mint(t, "U-1", time.Hour)))
	r := &fakeRefresher{store: store, credential: mint(t, "U-1", 2*time.Hour)}
	srv, hitsA := redirectServer(t)

	ctx, marker := WithRetryMarker(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/a", nil)
	require.NoError(t, err)
	resp, err := newClient(t, store, r).Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int64(2), hitsA.Load())
	assert.Equal(t, int64(1), r.calls.Load(), "the redirected hop must not retry again")
	assert.True(t, marker.Retried())
}

func TestRetryMarkerIsSingleUse(t *testing.T) {
	ctx, m := WithRetryMarker(context.Background())
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.Retried())

	same, m2 := WithRetryMarker(ctx)
	assert.Same(t, m, m2)
	assert.Equal(t, ctx, same)

	assert.True(t, m.claim())
	assert.False(t, m.claim())
	assert.True(t, m.Retried())
}

func TestNewRequiresStoreAndRefresher(t *testing.T) {
	_, err := New(WithRefresher(&fakeRefresher{}))
	assert.Error(t, err)
	_, err = New(WithStore(authstore.NewMemory()))
	assert.Error(t, err)
}
