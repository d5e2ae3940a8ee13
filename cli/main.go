//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/UEMSession/cli/client"
	"github.com/UnifyEM/UEMSession/cli/functions/account"
	"github.com/UnifyEM/UEMSession/cli/functions/devserver"
	"github.com/UnifyEM/UEMSession/cli/functions/me"
	"github.com/UnifyEM/UEMSession/cli/functions/password"
	"github.com/UnifyEM/UEMSession/cli/functions/status"
	"github.com/UnifyEM/UEMSession/cli/functions/verify"
	"github.com/UnifyEM/UEMSession/cli/functions/version"
	"github.com/UnifyEM/UEMSession/client/global"
)

func main() {
	var err error

	// Get the name of this binary, eliminating any path information
	progName := os.Args[0]
	progName = progName[strings.LastIndex(progName, "/")+1:]

	// Initialize the root command
	rootCmd := &cobra.Command{
		Use:           progName,
		Short:         global.Description,
		Long:          global.LongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("a subcommand is required")
		},
	}

	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&client.ConfigFile, "config", "c", "", "configuration file (default is the per-user config directory)")
	rootCmd.PersistentFlags().StringVarP(&client.ServerURL, "server", "s", "", "server URL, overrides the configuration and "+global.EnvServer)

	// Add the functions
	rootCmd.AddCommand(account.Register()...)
	rootCmd.AddCommand(password.Register()...)
	rootCmd.AddCommand(verify.Register())
	rootCmd.AddCommand(status.Register())
	rootCmd.AddCommand(me.Register())
	rootCmd.AddCommand(devserver.Register())
	rootCmd.AddCommand(version.Register())

	// Execute the CLI
	err = rootCmd.Execute()
	if err != nil {
		client.Error(err)
		os.Exit(1)
	}
}
