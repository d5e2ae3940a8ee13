/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"errors"
	"net/http"

	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/common/userver"
	"github.com/UnifyEM/UEMSession/server/data"
	"github.com/UnifyEM/UEMSession/server/db"
)

// @Summary Register a user
// @Description Creates an unverified user and starts a session. The refresh session is returned as an HttpOnly cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param user body schema.SignupRequest true "New user"
// @Success 200 {object} schema.APIAuthResponse
// @Failure 400 {object} schema.APIGenericResponse
// @Failure 409 {object} schema.APIGenericResponse
// @Router /auth/register [post]
func (a *API) postRegister(req *http.Request) userver.JResponse {
	var request schema.SignupRequest
	if err := readJSON(req, &request); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body")
	}

	logInfo := fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("email", request.Email))

	user, err := a.data.Register(request.Username, request.Email, request.Password)
	if err != nil {
		a.logger.Warning(8611, "registration failed", logInfo.AppendError(err))
		switch {
		case errors.Is(err, data.ErrUserExists):
			return errorResponse(http.StatusConflict, "email already registered")
		case errors.Is(err, data.ErrInvalidRequest):
			return errorResponse(http.StatusBadRequest, err.Error())
		}
		return errorResponse(http.StatusInternalServerError, "registration failed")
	}

	a.logger.Info(8612, "user registered", logInfo.AppendKV("id", user.ID))
	return a.startSession(user, logInfo)
}

// @Summary Log in
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body schema.LoginRequest true "Email and password"
// @Success 200 {object} schema.APIAuthResponse
// @Failure 400 {object} schema.APIGenericResponse
// @Failure 401 {object} schema.APIGenericResponse
// @Router /auth/login [post]
func (a *API) postLogin(req *http.Request) userver.JResponse {
	var request schema.LoginRequest
	if err := readJSON(req, &request); err != nil {
		return failureResponse
	}

	logInfo := fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("email", request.Email))

	if request.Email == "" || request.Password == "" {
		a.logger.Error(8613, "login missing required fields", logInfo)
		return failureResponse
	}

	user, err := a.data.Authenticate(request.Email, request.Password)
	if err != nil {
		a.logger.Error(8614, "login failed", logInfo.Append(fields.NewField("auth-result", "failed")).AppendError(err))
		a.server.PenaltyBox()
		return failureResponse
	}

	a.logger.Info(8615, "successful login", logInfo.Append(fields.NewField("auth-result", "success")))
	return a.startSession(user, logInfo)
}

// startSession issues an access token and a refresh session cookie
func (a *API) startSession(user db.UserRecord, logInfo *fields.Fields) userver.JResponse {
	accessToken, err := a.data.IssueAccessToken(user)
	if err != nil {
		a.logger.Error(8616, "unable to issue access token", logInfo.Clone().AppendError(err))
		return errorResponse(http.StatusInternalServerError, "unable to issue access token")
	}

	sessionID, expires, err := a.data.NewSession(user)
	if err != nil {
		a.logger.Error(8617, "unable to create refresh session", logInfo.Clone().AppendError(err))
		return errorResponse(http.StatusInternalServerError, "unable to create refresh session")
	}

	principal := data.Principal(user)
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIAuthResponse{
			Status:      schema.APIStatusOK,
			Code:        http.StatusOK,
			AccessToken: accessToken,
			User:        &principal},
		Cookies: []*http.Cookie{sessionCookie(sessionID, expires)}}
}

// postLogout ends the refresh session named by the cookie. It succeeds
// whether or not a session exists.
// @Summary Log out
// @Description Ends the refresh session named by the cookie and expires the cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} schema.APIGenericResponse
// @Router /auth/logout [post]
func (a *API) postLogout(req *http.Request) userver.JResponse {
	if err := a.data.EndSession(sessionID(req)); err != nil {
		a.logger.Error(8618, "unable to end refresh session", fields.NewFields(
			fields.NewField("src_ip", userver.RemoteIP(req))).AppendError(err))
	}

	resp := okResponse("logged out")
	resp.Cookies = []*http.Cookie{expiredCookie()}
	return resp
}
