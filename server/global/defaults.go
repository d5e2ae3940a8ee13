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
	ConfigServerSet       = "server_config"
	ConfigLogFile         = "log_file"
	ConfigLogStdout       = "log_stdout"
	ConfigLogRetention    = "log_retention"
	ConfigListen          = "listen"
	ConfigDBPath          = "db_path"
	ConfigRefreshBase     = "refresh_base"
	ConfigHTTPTimeout     = "http_timeout"
	ConfigHTTPIdleTimeout = "http_idle_timeout"
	ConfigMaxConcurrent   = "max_concurrent"
	ConfigPenaltyBoxMin   = "penalty_box_min"
	ConfigPenaltyBoxMax   = "penalty_box_max"
	ConfigHandlerTimeout  = "handler_timeout"
	ConfigAccessTokenLife = "access_token_life"
	ConfigRefreshLife     = "refresh_session_life"
	ConfigTicketLife      = "ticket_life"
	ConfigDevEndpoints    = "dev_endpoints"
	ConfigPruneInterval   = "prune_interval"
	ConfigPrivate         = "server_private"
	ConfigJWTKey          = "jwt_key"
)

// serverDefaults declares the server set. Lifetimes are in seconds.
func serverDefaults(sc *params.Params) {
	sc.SetConstraint(ConfigLogFile, 0, 0, "")                            // no log file by default
	sc.SetConstraint(ConfigLogStdout, 0, 0, true)                        // by default log to the console
	sc.SetConstraint(ConfigLogRetention, 1, 0, 30)                       // days
	sc.SetConstraint(ConfigListen, 0, 0, "127.0.0.1:8080")               // listen address
	sc.SetConstraint(ConfigDBPath, 0, 0, "")                             // empty means next to the config file
	sc.SetConstraint(ConfigRefreshBase, 0, 0, schema.DefaultRefreshBase) // path prefix of the refresh endpoint
	sc.SetConstraint(ConfigHTTPTimeout, 0, 0, 30)                        // seconds
	sc.SetConstraint(ConfigHTTPIdleTimeout, 0, 0, 30)                    // seconds
	sc.SetConstraint(ConfigMaxConcurrent, 0, 0, 100)                     // concurrent connections, others wait
	sc.SetConstraint(ConfigPenaltyBoxMin, 0, 0, 250)                     // milliseconds
	sc.SetConstraint(ConfigPenaltyBoxMax, 0, 0, 1000)                    // milliseconds
	sc.SetConstraint(ConfigHandlerTimeout, 0, 0, 30)                     // seconds
	sc.SetConstraint(ConfigAccessTokenLife, 0, 0, 300)                   // seconds
	sc.SetConstraint(ConfigRefreshLife, 0, 0, 86400)                     // seconds
	sc.SetConstraint(ConfigTicketLife, 0, 0, 3600)                       // reset and verification tickets, seconds
	sc.SetConstraint(ConfigDevEndpoints, 0, 0, true)                     // fault injection and mailbox endpoints
	sc.SetConstraint(ConfigPruneInterval, 10, 86400, 300)                // seconds between removals of expired sessions
}

func privateDefaults(sp *params.Params) {
	sp.SetConstraint(ConfigJWTKey, 0, 0, "")
}
