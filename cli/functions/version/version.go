/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package version

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/UEMSession/client/global"
	"github.com/UnifyEM/UEMSession/common"
)

func Register() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "version, copyright, and legal",
		Long:  "display version, copyright, and legal information",
		RunE: func(cmd *cobra.Command, args []string) error {
			common.Banner(os.Stdout, global.Description, global.Version, global.Build)
			return nil
		},
	}
}
