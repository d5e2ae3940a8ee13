/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/common/userver"
)

// failureResponse provides a consistent response to failed authentication attempts
var failureResponse = errorResponse(http.StatusUnauthorized, "authentication failed")

func errorResponse(code int, details string) userver.JResponse {
	return userver.JResponse{
		HTTPCode: code,
		JSONData: schema.APIGenericResponse{
			Status:  schema.APIStatusError,
			Code:    code,
			Details: details}}
}

func okResponse(details string) userver.JResponse {
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIGenericResponse{
			Status:  schema.APIStatusOK,
			Code:    http.StatusOK,
			Details: details}}
}

// readJSON deserializes the request body into v
func readJSON(req *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(req.Body, 1<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func sessionCookie(id string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     schema.RefreshCookie,
		Value:    id,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     schema.RefreshCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func sessionID(req *http.Request) string {
	c, err := req.Cookie(schema.RefreshCookie)
	if err != nil {
		return ""
	}
	return c.Value
}
