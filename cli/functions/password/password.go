/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package password

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/UEMSession/cli/client"
	"github.com/UnifyEM/UEMSession/client/global"
)

func Register() []*cobra.Command {
	return []*cobra.Command{forgotCmd(), resetCmd()}
}

func forgotCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "request a password reset",
		Long:  "ask the server to send a password reset token to an email address",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = client.Value(email, global.EnvEmail, "Email"); err != nil {
				return err
			}

			c, err := client.Open()
			if err != nil {
				return err
			}
			defer c.Close()

			if err = c.ForgotPassword(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Println("If the address is registered a reset token has been sent")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <token>",
		Short: "set a new password",
		Long:  "set a new password using a token from forgot-password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := client.Password("", "New password")
			if err != nil {
				return err
			}

			c, err := client.Open()
			if err != nil {
				return err
			}
			defer c.Close()

			if err = c.ResetPassword(cmd.Context(), args[0], pass); err != nil {
				return err
			}
			fmt.Println("Password reset. Log in with the new password.")
			return nil
		},
	}
}
