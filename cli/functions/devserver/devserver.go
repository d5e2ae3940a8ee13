/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package devserver

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/UEMSession/common/ulogger"
	devsrv "github.com/UnifyEM/UEMSession/server/devserver"
	"github.com/UnifyEM/UEMSession/server/global"
)

func Register() *cobra.Command {
	var listen, config string
	var expired bool

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "run the development auth server",
		Long:  "run the development auth server in the foreground until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := global.Config(config)
			if err != nil {
				return err
			}
			if listen != "" {
				conf.SC.Set(global.ConfigListen, listen)
			}

			logger, err := ulogger.New(
				ulogger.WithPrefix(global.LogName),
				ulogger.WithLogFile(conf.SC.Get(global.ConfigLogFile).String()),
				ulogger.WithConsole(true),
				ulogger.WithDebug(true))
			if err != nil {
				return err
			}
			defer logger.Close()

			s, err := devsrv.New(conf, logger)
			if err != nil {
				return err
			}
			if expired {
				// Every access token needs a refresh before its first use
				s.API().Data().SetAccessLife(-time.Minute)
			}
			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from configuration, 127.0.0.1:8080)")
	cmd.Flags().StringVar(&config, "server-config", "", "server configuration file (default is an unsaved configuration)")
	cmd.Flags().BoolVar(&expired, "expired-tokens", false, "issue access tokens that are already expired")
	return cmd
}
