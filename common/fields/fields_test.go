/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package fields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToText(t *testing.T) {
	f := NewFields(NewField("op", "login"), NewField("status", 401))
	assert.Equal(t, "op=login status=401", f.ToText())
}

func TestToTextQuotesWhitespace(t *testing.T) {
	f := NewFields(NewField("details", "token expired"))
	assert.Equal(t, `details="token expired"`, f.ToText())
}

func TestToTextNil(t *testing.T) {
	var f *Fields
	assert.Equal(t, "", f.ToText())
	assert.Nil(t, f.ToPairs())
}

func TestAppendErrorSkipsNil(t *testing.T) {
	f := NewFields().AppendError(nil)
	assert.Empty(t, f.Fields)

	f.AppendError(errors.New("boom"))
	assert.Equal(t, "error=boom", f.ToText())
}

func TestCloneIsIndependent(t *testing.T) {
	base := NewFields(NewField("request_id", "r-1"))
	c := base.Clone().AppendKV("attempt", 2)

	assert.Len(t, base.Fields, 1)
	assert.Len(t, c.Fields, 2)
	assert.Equal(t, "attempt", c.ToPairs()[1].Name())
	assert.Equal(t, 2, c.ToPairs()[1].Value())
}
