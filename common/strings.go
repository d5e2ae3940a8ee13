//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package common

import (
	"strings"
)

// SingleLine normalizes text received from a server before it is logged
// or displayed. Leading and trailing whitespace is trimmed, line breaks
// become a visible marker and runs of whitespace collapse to one space.
func SingleLine(s string) string {
	if s == "" {
		return s
	}

	replacer := strings.NewReplacer(
		"\r\n", " ⏎ ",
		"\n", " ⏎ ",
		"\r", " ⏎ ",
	)

	s = replacer.Replace(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
