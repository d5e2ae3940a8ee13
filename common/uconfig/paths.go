/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"os"
	"path/filepath"
)

// UserDir returns a per-user application directory under the user's
// configuration directory, creating it if necessary. An empty string
// is returned if no directory could be determined or created.
func UserDir(app string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		base, err = os.UserHomeDir()
		if err != nil {
			return ""
		}
	}
	dir := filepath.Join(base, app)
	if err = os.MkdirAll(dir, 0700); err != nil {
		return ""
	}
	return dir
}
