/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package verify

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/UEMSession/cli/client"
)

func Register() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <code>",
		Short: "verify the email address",
		Long:  "submit the emailed verification code for the signed in user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Open()
			if err != nil {
				return err
			}
			defer c.Close()

			if err = c.VerifyEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Email verified, role is now %s\n", c.State().Role)
			return nil
		},
	}
}
