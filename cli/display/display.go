/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/UnifyEM/UEMSession/client/session"
	"github.com/UnifyEM/UEMSession/client/token"
)

// Pretty prints v as indented JSON
func Pretty(w io.Writer, v any) {

	// Marshal the interface into a JSON string with indentation
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(w, "Error marshalling to JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(w, string(jsonData))
}

// State prints the session state. The credential itself is never shown.
func State(w io.Writer, st session.State, codec *token.Codec) {
	if !st.Authenticated && st.Credential == "" {
		_, _ = fmt.Fprintln(w, "Not logged in")
		return
	}

	_, _ = fmt.Fprintf(w, "Authenticated: %t\n", st.Authenticated)
	if st.Principal != nil {
		_, _ = fmt.Fprintf(w, "User:          %s <%s>\n", st.Principal.Username, st.Principal.Email)
		_, _ = fmt.Fprintf(w, "ID:            %s\n", st.Principal.ID)
		_, _ = fmt.Fprintf(w, "Verified:      %t\n", st.Principal.Verified)
	}
	if st.Role != "" {
		_, _ = fmt.Fprintf(w, "Role:          %s\n", st.Role)
	}

	if st.Credential == "" {
		_, _ = fmt.Fprintln(w, "Credential:    none")
		return
	}
	if codec.IsExpired(st.Credential) {
		_, _ = fmt.Fprintln(w, "Credential:    expired, it will be refreshed on the next call")
		return
	}
	if remaining, ok := codec.Remaining(st.Credential); ok {
		_, _ = fmt.Fprintf(w, "Credential:    valid for %s\n", remaining.Round(time.Second))
	}
}
