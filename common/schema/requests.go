/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest is used by forgot-password
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the new password; the reset token is a path parameter
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Code string `json:"code"`
}
