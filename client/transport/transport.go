/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package transport is the http.RoundTripper that keeps outgoing requests
// authorized. Requests pass through the RequestInterceptor before dispatch
// and their responses through the ResponseInterceptor.
package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// Ensure Transport implements http.RoundTripper
var _ http.RoundTripper = (*Transport)(nil)

type Transport struct {
	base     http.RoundTripper
	request  *RequestInterceptor
	response *ResponseInterceptor
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, _ := WithRetryMarker(req.Context())
	req = req.Clone(ctx)

	if err := bufferBody(req); err != nil {
		return nil, err
	}

	out, err := t.request.Intercept(req)
	if err != nil {
		closeBody(req)
		return nil, err
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	return t.response.Intercept(out, resp, t.base.RoundTrip)
}

// Client returns an http.Client using this transport and jar
func (t *Transport) Client(jar http.CookieJar) *http.Client {
	return &http.Client{Transport: t, Jar: jar}
}

// bufferBody makes the body of req replayable
func bufferBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return nil
	}

	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return fmt.Errorf("error reading request body: %w", err)
	}

	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	req.ContentLength = int64(len(data))
	return nil
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
