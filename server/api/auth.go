//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/common/userver"
)

// AuthInfo identifies the principal behind a bearer-authorized request
type AuthInfo struct {
	ID   string
	Role string
}

// authFunc validates the bearer credential. Expired credentials get a
// distinct status so clients can tell them apart in logs.
func (a *API) authFunc(req *http.Request) (any, *userver.JResponse) {
	logFields := fields.NewFields(fields.NewField("src_ip", userver.RemoteIP(req)))

	if a.consumeReject() {
		a.logger.Info(8631, "authentication failure: injected rejection", logFields)
		return nil, a.authFailure(false)
	}

	authHeader := req.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		a.logger.Warning(8632, "authentication failure: missing or invalid Authorization header", logFields)
		return nil, a.authFailure(false)
	}

	claims, err := a.data.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		logFields.AppendError(err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			a.logger.Info(8633, "authentication expired", logFields)
			return nil, a.authFailure(true)
		}
		a.logger.Warning(8634, "authentication failure", logFields)
		return nil, a.authFailure(false)
	}

	a.logger.Debug(8635, "authentication success", logFields.Append(
		fields.NewField("id", claims.Subject),
		fields.NewField("role", claims.Role)))
	return AuthInfo{ID: claims.Subject, Role: claims.Role}, nil
}

// authFailure returns a generic response for authentication failures.
// The only variation is for expired tokens.
func (a *API) authFailure(expired bool) *userver.JResponse {
	msg := schema.APIGenericResponse{
		Status:  schema.APIStatusError,
		Code:    http.StatusUnauthorized,
		Details: "authentication failed"}

	if expired {
		msg.Details = "token expired"
		msg.Status = schema.APIStatusExpired
	}
	return &userver.JResponse{HTTPCode: http.StatusUnauthorized, JSONData: msg}
}

func GetAuthDetails(req *http.Request) AuthInfo {
	details, _ := userver.AuthDetails(req).(AuthInfo)
	return details
}
