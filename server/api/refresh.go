/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"net/http"

	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/common/userver"
)

// postRefresh exchanges the refresh session cookie for a new access token.
// The bearer header, if any, is ignored.
// @Summary Refresh the access token
// @Description Exchanges the refresh session cookie for a new access token. The path prefix is configurable.
// @Tags Authentication
// @Produce json
// @Success 200 {object} schema.APITokenRefreshResponse
// @Failure 401 {object} schema.APIGenericResponse
// @Failure 500 {object} schema.APIGenericResponse
// @Router /session/refresh [post]
func (a *API) postRefresh(req *http.Request) userver.JResponse {
	n := a.refreshCount.Add(1)
	logInfo := fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("exchange", n))

	if a.failRefresh.Load() {
		a.logger.Info(8621, "access token refresh failed: injected failure", logInfo)
		return errorResponse(http.StatusUnauthorized, "refresh session expired")
	}

	user, err := a.data.RefreshSession(sessionID(req))
	if err != nil {
		logInfo.Append(fields.NewField("refresh-result", "failed")).AppendError(err)
		a.logger.Error(8622, "access token refresh failed", logInfo)
		resp := errorResponse(http.StatusUnauthorized, "refresh session expired")
		resp.Cookies = []*http.Cookie{expiredCookie()}
		return resp
	}

	accessToken, err := a.data.IssueAccessToken(user)
	if err != nil {
		a.logger.Error(8623, "unable to issue access token", logInfo.AppendError(err))
		return errorResponse(http.StatusInternalServerError, "unable to issue access token")
	}

	logInfo.Append(fields.NewField("refresh-result", "success"), fields.NewField("id", user.ID))
	a.logger.Info(8624, "successful access token refresh", logInfo)

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APITokenRefreshResponse{
			Status:      schema.APIStatusOK,
			Code:        http.StatusOK,
			AccessToken: accessToken}}
}
