/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package client

import (
	"errors"
	"fmt"
	"os"

	"github.com/UnifyEM/UEMSession/client/autherr"
)

// Error prints err to stderr with a hint when the session has ended
func Error(err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())

	if autherr.IsRefreshFailure(err) || errors.Is(err, autherr.ErrNoCredential) {
		_, _ = fmt.Fprintln(os.Stderr, "The session has ended. Please log in again.")
	}
}
