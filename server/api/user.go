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
)

// @Summary Request a password reset
// @Description Always succeeds so that registered addresses cannot be discovered
// @Tags Account
// @Accept json
// @Produce json
// @Param email body schema.EmailRequest true "Email address"
// @Success 200 {object} schema.APIGenericResponse
// @Failure 400 {object} schema.APIGenericResponse
// @Router /auth/forgot-password [post]
func (a *API) postForgotPassword(req *http.Request) userver.JResponse {
	var request schema.EmailRequest
	if err := readJSON(req, &request); err != nil || request.Email == "" {
		return errorResponse(http.StatusBadRequest, "email is required")
	}

	if err := a.data.ForgotPassword(request.Email); err != nil {
		a.logger.Error(8641, "unable to issue reset token", fields.NewFields(
			fields.NewField("src_ip", userver.RemoteIP(req))).AppendError(err))
		return errorResponse(http.StatusInternalServerError, "unable to process request")
	}

	// Same answer whether or not the address is registered
	return okResponse("if the address is registered a reset link has been sent")
}

// @Summary Reset a password
// @Tags Account
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param password body schema.ResetPasswordRequest true "New password"
// @Success 200 {object} schema.APIGenericResponse
// @Failure 400 {object} schema.APIGenericResponse
// @Router /auth/reset-password/{token} [post]
func (a *API) postResetPassword(req *http.Request) userver.JResponse {
	var request schema.ResetPasswordRequest
	if err := readJSON(req, &request); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body")
	}

	logInfo := fields.NewFields(fields.NewField("src_ip", userver.RemoteIP(req)))
	err := a.data.ResetPassword(userver.GetParam(req, "token"), request.Password)
	if err != nil {
		a.logger.Warning(8642, "password reset failed", logInfo.AppendError(err))
		if errors.Is(err, data.ErrTicketInvalid) || errors.Is(err, data.ErrInvalidRequest) {
			return errorResponse(http.StatusBadRequest, err.Error())
		}
		return errorResponse(http.StatusInternalServerError, "unable to reset password")
	}

	a.logger.Info(8643, "password reset", logInfo)
	return okResponse("password reset")
}

// postVerifyEmail marks the authenticated user verified. The access token
// is not rotated; the new role appears in the next refreshed token.
// @Summary Verify email address
// @Tags Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param code body schema.VerifyEmailRequest true "Verification code"
// @Success 200 {object} schema.APIAuthResponse
// @Failure 400 {object} schema.APIGenericResponse
// @Failure 401 {object} schema.APIGenericResponse
// @Router /auth/verify-email [post]
func (a *API) postVerifyEmail(req *http.Request) userver.JResponse {
	var request schema.VerifyEmailRequest
	if err := readJSON(req, &request); err != nil || request.Code == "" {
		return errorResponse(http.StatusBadRequest, "code is required")
	}

	info := GetAuthDetails(req)
	logInfo := fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("id", info.ID))

	user, err := a.data.VerifyEmail(info.ID, request.Code)
	if err != nil {
		a.logger.Warning(8644, "email verification failed", logInfo.AppendError(err))
		return errorResponse(http.StatusBadRequest, "invalid or expired verification code")
	}

	a.logger.Info(8645, "email verified", logInfo)
	principal := data.Principal(user)
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIAuthResponse{
			Status: schema.APIStatusOK,
			Code:   http.StatusOK,
			User:   &principal}}
}

// @Summary Get the authenticated user
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} schema.APIPrincipalResponse
// @Failure 401 {object} schema.APIGenericResponse
// @Router /api/v1/me [get]
func (a *API) getMe(req *http.Request) userver.JResponse {
	info := GetAuthDetails(req)
	user, err := a.data.UserByID(info.ID)
	if err != nil {
		return errorResponse(http.StatusNotFound, "user not found")
	}

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIPrincipalResponse{
			Status: schema.APIStatusOK,
			Code:   http.StatusOK,
			User:   data.Principal(user)}}
}
