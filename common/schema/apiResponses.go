/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

// All API responses include the Status and Code fields.

// APIGenericResponse is used for responses that carry no data and for all errors
type APIGenericResponse struct {
	Status  string `json:"status" example:"ok"`
	Code    int    `json:"code" example:"200"`
	Details string `json:"details,omitempty" example:"request processed"`
}

// APIAuthResponse is returned by register, login and verify-email.
// AccessToken is empty for verify-email, which does not rotate the credential.
type APIAuthResponse struct {
	Status      string     `json:"status" example:"ok"`
	Code        int        `json:"code" example:"200"`
	Details     string     `json:"details,omitempty"`
	AccessToken string     `json:"access_token,omitempty" example:"jwt"`
	User        *Principal `json:"user,omitempty"`
}

// APITokenRefreshResponse is returned by the refresh endpoint
type APITokenRefreshResponse struct {
	Status      string `json:"status" example:"ok"`
	Code        int    `json:"code" example:"200"`
	AccessToken string `json:"access_token,omitempty" example:"jwt"`
}

// APIPrincipalResponse is returned by the me endpoint
type APIPrincipalResponse struct {
	Status string    `json:"status" example:"ok"`
	Code   int       `json:"code" example:"200"`
	User   Principal `json:"user"`
}
