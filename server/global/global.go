//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

// Package global holds the development auth server's constants and configuration
package global

import "github.com/UnifyEM/UEMSession/common"

const (
	Name        = "UEMSessionServer"
	LogName     = "uemsession-server"
	Description = "UEMSession development auth server"
	TokenLength = 64 // Length of the JWT signing key and refresh session IDs prior to base-64 encoding
	SEid        = 8600
)

var (
	Version = common.Version
	Build   = common.Build
)
