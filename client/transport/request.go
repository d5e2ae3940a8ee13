/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/autherr"
	"github.com/UnifyEM/UEMSession/client/token"
	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// Refresher obtains a new credential. *refresh.Coordinator implements it.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// RequestInterceptor resolves a valid credential before dispatch and
// attaches it as a bearer header
type RequestInterceptor struct {
	store     authstore.Store
	codec     *token.Codec
	refresher Refresher
	logger    interfaces.Logger
}

// Intercept returns the request to dispatch. Requests are never modified
// in place; a clone is returned when a header is added.
func (ri *RequestInterceptor) Intercept(req *http.Request) (*http.Request, error) {
	ctx := req.Context()
	if IsAnonymous(ctx) {
		return req, nil
	}

	credential, ok := ri.store.Get(authstore.SlotCredential)
	if !ok {
		// Not logged in. The request goes out as is.
		return req, nil
	}

	if ri.codec.IsExpired(credential) {
		logInfo := requestFields(req)
		ri.logger.Debug(8401, "credential expired, refreshing before dispatch", logInfo)

		fresh, err := ri.refresher.Refresh(ctx)
		if err != nil {
			return nil, ri.refreshFailed(req, err)
		}
		credential = fresh
	}

	out := req.Clone(ctx)
	setBearer(out, credential)
	return out, nil
}

// refreshFailed maps a refresh error to the error returned for the request
func (ri *RequestInterceptor) refreshFailed(req *http.Request, err error) error {
	ctx := req.Context()
	logInfo := requestFields(req).AppendError(err)

	// The caller gave up waiting. The exchange carries on without it.
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		ri.logger.Debug(8402, "request cancelled while waiting for refresh", logInfo)
		return err
	}

	// A newer session owns the credential slot and must not be cleared
	if errors.Is(err, autherr.ErrSessionReplaced) {
		ri.logger.Info(8403, "session replaced while waiting for refresh", logInfo)
		return &autherr.AuthError{Reason: autherr.ReasonRefreshFailed, Err: err}
	}

	// The refresher already cleared the session under its generation check.
	// Clearing again here could remove a credential stored by a newer login.
	ri.logger.Warning(8404, "refresh failed, request not dispatched", logInfo)
	return &autherr.AuthError{Reason: autherr.ReasonRefreshFailed, Err: err}
}

func setBearer(req *http.Request, credential string) {
	req.Header.Set("Authorization", "Bearer "+credential)
}

func requestFields(req *http.Request) *fields.Fields {
	f := fields.NewFields(
		fields.NewField("method", req.Method),
		fields.NewField("path", req.URL.Path))
	if m, ok := MarkerFrom(req.Context()); ok {
		f.AppendKV("request_id", m.ID)
	}
	return f
}
