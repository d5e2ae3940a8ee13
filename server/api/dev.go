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

// @Summary Inject refresh faults
// @Description Makes the refresh endpoint fail, or rejects the next N authorized calls. Only served when dev endpoints are enabled.
// @Tags Development
// @Accept json
// @Produce json
// @Param faults body schema.DevFaultsRequest true "Faults to inject"
// @Success 200 {object} schema.APIGenericResponse
// @Failure 400 {object} schema.APIGenericResponse
// @Router /dev/faults [post]
func (a *API) postFaults(req *http.Request) userver.JResponse {
	var request schema.DevFaultsRequest
	if err := readJSON(req, &request); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body")
	}

	if request.FailRefresh != nil {
		a.FailRefresh(*request.FailRefresh)
	}
	if request.RejectNext > 0 {
		a.RejectNext(request.RejectNext)
	}

	a.logger.Info(8681, "faults updated", fields.NewFields(
		fields.NewField("fail_refresh", a.failRefresh.Load()),
		fields.NewField("reject_next", a.rejectNext.Load())))
	return okResponse("faults updated")
}

// @Summary Read the simulated mailbox
// @Tags Development
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} schema.APIMailboxResponse
// @Failure 500 {object} schema.APIGenericResponse
// @Router /dev/mailbox/{email} [get]
func (a *API) getMailbox(req *http.Request) userver.JResponse {
	box, err := a.data.Mailbox(userver.GetParam(req, "email"))
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "mailbox unavailable")
	}

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIMailboxResponse{
			Status:           schema.APIStatusOK,
			Code:             http.StatusOK,
			ResetToken:       box.ResetToken,
			VerificationCode: box.VerificationCode}}
}
