/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package global holds the session client's constants and configuration
package global

import "github.com/UnifyEM/UEMSession/common"

//goland:noinspection GoUnusedConst
const (
	Name            = "UEMSession"
	LogName         = "uemsession"
	Description     = "UEMSession CLI"
	LongDescription = "UEMSession command line client for the session and token lifecycle"
	EnvFile         = ".uemsession"
	EnvServer       = "UEM_SERVER"
	EnvEmail        = "UEM_EMAIL"
	EnvPass         = "UEM_PASS"
	EnvConfig       = "UEM_CONFIG"
)

var (
	Version = common.Version
	Build   = common.Build
)

// Store types
const (
	StoreMemory = "memory"
	StoreBolt   = "bolt"
	StoreFile   = "file"
)
