/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package me

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/UEMSession/cli/client"
	"github.com/UnifyEM/UEMSession/cli/display"
	"github.com/UnifyEM/UEMSession/common/schema"
)

func Register() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "show the signed in user",
		Long:  "fetch the signed in user from the server, refreshing the credential if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Open()
			if err != nil {
				return err
			}
			defer c.Close()

			var resp schema.APIPrincipalResponse
			if err = c.GetJSON(cmd.Context(), schema.EndpointMe, &resp); err != nil {
				return err
			}
			display.Pretty(os.Stdout, resp.User)
			return nil
		},
	}
}
