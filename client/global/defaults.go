/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/common/uconfig/params"
)

const (
	ConfigClientSet      = "client_config"
	ConfigServerURL      = "server_url"
	ConfigRefreshBase    = "refresh_base"
	ConfigStoreType      = "store_type"
	ConfigStoreFile      = "store_file"
	ConfigLeeway         = "leeway"
	ConfigRefreshTimeout = "refresh_timeout"
	ConfigLogFile        = "log_file"
	ConfigDebug          = "debug"
)

// clientDefaults declares the client set. Durations are in seconds.
func clientDefaults(cc *params.Params) {
	cc.SetConstraint(ConfigServerURL, 0, 0, "http://127.0.0.1:8080")     // auth server
	cc.SetConstraint(ConfigRefreshBase, 0, 0, schema.DefaultRefreshBase) // path prefix of the refresh endpoint
	cc.SetConstraint(ConfigStoreType, 0, 0, StoreBolt)                   // memory, bolt or file
	cc.SetConstraint(ConfigStoreFile, 0, 0, "")                          // empty means next to the config file
	cc.SetConstraint(ConfigLeeway, 0, 300, 0)                            // refresh this many seconds before exp
	cc.SetConstraint(ConfigRefreshTimeout, 1, 300, 30)                   // seconds
	cc.SetConstraint(ConfigLogFile, 0, 0, "")                            // no log file by default
	cc.SetConstraint(ConfigDebug, 0, 0, false)                           // debug logging
}
