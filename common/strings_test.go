//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "", SingleLine(""))
	assert.Equal(t, "token expired", SingleLine("  token   expired \n"))
	assert.Equal(t, "line one ⏎ line two", SingleLine("line one\r\nline two"))
}

func TestBanner(t *testing.T) {
	var b bytes.Buffer
	Banner(&b, "uemsession", "1.2.3", 7)
	assert.Contains(t, b.String(), "uemsession version 1.2.3 (build 7)")
}
