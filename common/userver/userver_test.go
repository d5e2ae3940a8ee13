//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New()
	require.NoError(t, err)

	deny := func(req *http.Request) (any, *JResponse) {
		if req.Header.Get("Authorization") != "Bearer good" {
			return nil, &JResponse{HTTPCode: http.StatusUnauthorized, JSONData: Response{Status: "error", Code: http.StatusUnauthorized}}
		}
		return "alice", nil
	}

	s.AddRoutes(Routes{
		{
			Name:    "echo",
			Methods: []string{"POST"},
			Pattern: "/echo/{id}",
			JHandler: func(req *http.Request) JResponse {
				return JResponse{
					HTTPCode: http.StatusOK,
					JSONData: Response{Status: "ok", Code: http.StatusOK, Details: GetParam(req, "id")},
					Cookies:  []*http.Cookie{{Name: "c", Value: "v"}}}
			},
		},
		{
			Name:    "private",
			Methods: []string{"GET"},
			Pattern: "/private",
			JHandler: func(req *http.Request) JResponse {
				return JResponse{HTTPCode: http.StatusOK, JSONData: Response{Status: "ok", Details: AuthDetails(req).(string)}}
			},
			AuthFunc: deny,
		},
	})

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response) Response {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var r Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	return r
}

func TestJHandlerWithParamAndCookie(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/echo/42", "application/json", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, "c", resp.Cookies()[0].Name)
	assert.Equal(t, "42", decode(t, resp).Details)
}

func TestAuthFunc(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/private")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", decode(t, resp).Details)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nothing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error", decode(t, resp).Status)

	resp, err = http.Get(srv.URL + "/echo/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, "ok", decode(t, resp).Status)
}

func TestPenaltyBoxRange(t *testing.T) {
	_, err := New(WithPenaltyBox(10, 5))
	assert.Error(t, err)
}
