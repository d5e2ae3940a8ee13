/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package status

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/UEMSession/cli/client"
	"github.com/UnifyEM/UEMSession/cli/display"
	"github.com/UnifyEM/UEMSession/client/global"
)

func Register() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "show the local session",
		Long:  "show the persisted session without contacting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Open()
			if err != nil {
				return err
			}
			defer c.Close()

			fmt.Printf("Server:        %s\n", c.Conf.CC.Get(global.ConfigServerURL).String())
			display.State(os.Stdout, c.State(), c.Codec())
			return nil
		},
	}
}
