//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package schema

// Auth endpoints are relative to the server URL. The refresh endpoint is
// relative to a separate base path (see DefaultRefreshBase) so that it can
// be routed and cookie-scoped independently of the bearer-authorized API.
//
//goland:noinspection ALL
const (
	EndpointRegister       = "/auth/register"
	EndpointLogin          = "/auth/login"
	EndpointLogout         = "/auth/logout"
	EndpointForgotPassword = "/auth/forgot-password"
	EndpointResetPassword  = "/auth/reset-password/{token}"
	EndpointVerifyEmail    = "/auth/verify-email"
	EndpointRefresh        = "/refresh"
	EndpointMe             = "/api/v1/me"
	DefaultRefreshBase     = "/session"
)

//goland:noinspection ALL
const (
	APIStatusOK      = "ok"
	APIStatusError   = "error"
	APIStatusExpired = "expired"
)

// RefreshCookie carries the server-side refresh session. The client never
// reads it; it only travels with the refresh exchange.
const RefreshCookie = "uem_refresh"
