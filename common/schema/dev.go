//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package schema

// Development server endpoints. They exist only when the server is started
// with dev endpoints enabled and are never used by the session client.
//
//goland:noinspection ALL
const (
	EndpointDevFaults  = "/dev/faults"
	EndpointDevMailbox = "/dev/mailbox/{email}"
)

// DevFaultsRequest injects failures into the development server. A nil
// FailRefresh leaves the current setting unchanged.
type DevFaultsRequest struct {
	FailRefresh *bool `json:"fail_refresh,omitempty"`
	RejectNext  int   `json:"reject_next,omitempty"`
}

// APIMailboxResponse returns the tickets that would have been emailed
type APIMailboxResponse struct {
	Status           string `json:"status" example:"ok"`
	Code             int    `json:"code" example:"200"`
	ResetToken       string `json:"reset_token,omitempty"`
	VerificationCode string `json:"verification_code,omitempty"`
}
