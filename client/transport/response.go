/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/UnifyEM/UEMSession/client/autherr"
	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// Dispatcher sends a request without further interception
type Dispatcher func(*http.Request) (*http.Response, error)

// ResponseInterceptor performs at most one refresh-and-retry per
// originating request when the server rejects the credential
type ResponseInterceptor struct {
	refresher Refresher
	logger    interfaces.Logger
}

// Intercept inspects resp, the outcome of sending req. On 401 or 403 for a
// request that carried a bearer, with its RetryMarker unset, it refreshes, re-attaches the new
// credential to req and dispatches it once more with send.
func (ri *ResponseInterceptor) Intercept(req *http.Request, resp *http.Response, send Dispatcher) (*http.Response, error) {
	if !rejected(resp) || IsAnonymous(req.Context()) {
		return resp, nil
	}

	// Without a bearer there is nothing the server could have rejected
	if req.Header.Get("Authorization") == "" {
		return resp, nil
	}

	marker, ok := MarkerFrom(req.Context())
	if !ok || !marker.claim() {
		// Already retried once. The rejection is final.
		return resp, nil
	}

	logInfo := requestFields(req).AppendKV("status", resp.StatusCode)

	// The retry needs a replayable body
	retry := req.Clone(req.Context())
	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			ri.logger.Warning(8411, "rejected request body cannot be replayed", logInfo)
			return resp, nil
		}
		body, err := req.GetBody()
		if err != nil {
			ri.logger.Warning(8411, "rejected request body cannot be replayed", logInfo.Clone().AppendError(err))
			return resp, nil
		}
		retry.Body = body
	}

	discard(resp)
	ri.logger.Info(8412, "credential rejected, refreshing and retrying", logInfo)

	credential, err := ri.refresher.Refresh(req.Context())
	if err != nil {
		if req.Context().Err() != nil && errors.Is(err, req.Context().Err()) {
			return nil, err
		}
		ri.logger.Warning(8413, "refresh after rejection failed", logInfo.Clone().AppendError(err))
		return nil, &autherr.AuthError{Reason: autherr.ReasonRefreshFailed, Err: err}
	}

	setBearer(retry, credential)
	out, err := send(retry)
	if err != nil {
		return nil, fmt.Errorf("retry failed: %w", err)
	}
	if rejected(out) {
		ri.logger.Warning(8414, "retried request rejected again", logInfo.Clone().AppendKV("retry_status", out.StatusCode))
	}
	return out, nil
}

func rejected(resp *http.Response) bool {
	return resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden)
}

// discard drains and closes a response that will not be returned
func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
