//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package common

// Version and Build are overridden at link time by release builds
var (
	Version = "0.3.0"
	Build   = 1
)
