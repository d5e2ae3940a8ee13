/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

// Principal describes the authenticated identity
type Principal struct {
	ID       string `json:"id" example:"U-6f9dcb2e-2e1b-4c3a-8a67-5b3e0d740df6"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Role     string `json:"role" example:"user"`
	Verified bool   `json:"verified"`
}

//goland:noinspection GoUnusedConst
const (
	RoleUser       = "user"
	RoleUnverified = "unverified"
	RoleAdmin      = "admin"
)
