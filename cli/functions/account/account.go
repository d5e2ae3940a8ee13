/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package account implements the signup, login and logout commands
package account

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/UEMSession/cli/client"
	"github.com/UnifyEM/UEMSession/client/global"
)

func Register() []*cobra.Command {
	return []*cobra.Command{signupCmd(), loginCmd(), logoutCmd()}
}

func signupCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "create an account",
		Long:  "create an account and start a session for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return signup(cmd.Context(), username, email)
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "user name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func signup(ctx context.Context, username, email string) error {
	var err error
	if username, err = client.Value(username, "", "Username"); err != nil {
		return err
	}
	if email, err = client.Value(email, global.EnvEmail, "Email"); err != nil {
		return err
	}
	pass, err := client.Password(global.EnvPass, "Password")
	if err != nil {
		return err
	}

	c, err := client.Open()
	if err != nil {
		return err
	}
	defer c.Close()

	if err = c.Signup(ctx, username, email, pass); err != nil {
		return err
	}

	st := c.State()
	fmt.Printf("Signed up as %s with role %s\n", st.Principal.Email, st.Role)
	fmt.Println("A verification code has been sent. Use the verify command to confirm the address.")
	return nil
}

func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "log in",
		Long:  "log in with an email address and password, replacing any existing session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return login(cmd.Context(), email)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address (default "+global.EnvEmail+")")
	return cmd
}

func login(ctx context.Context, email string) error {
	var err error
	if email, err = client.Value(email, global.EnvEmail, "Email"); err != nil {
		return err
	}
	pass, err := client.Password(global.EnvPass, "Password")
	if err != nil {
		return err
	}

	c, err := client.Open()
	if err != nil {
		return err
	}
	defer c.Close()

	if err = c.Login(ctx, email, pass); err != nil {
		return err
	}

	st := c.State()
	fmt.Printf("Logged in as %s with role %s\n", st.Principal.Email, st.Role)
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "log out",
		Long:  "end the session on the server and clear all local session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Open()
			if err != nil {
				return err
			}
			defer c.Close()

			err = c.Logout(cmd.Context())
			fmt.Println("Local session cleared")
			return err
		},
	}
}
