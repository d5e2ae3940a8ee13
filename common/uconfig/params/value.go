//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package params

import (
	"strconv"
	"time"

	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// Ensure Value implements the ParameterValue interface
var _ interfaces.ParameterValue = (*Value)(nil)

type Value string

// NewValue is a convenience function that returns a "" as a ParameterValue
func NewValue() interfaces.ParameterValue {
	return Value("")
}

func (v Value) String() string {
	return string(v)
}

func (v Value) Bytes() []byte {
	return []byte(v)
}

// Int returns 0 if the value is not an integer
func (v Value) Int() int {
	i, err := strconv.Atoi(v.String())
	if err != nil {
		return 0
	}
	return i
}

// Int64 returns 0 if the value is not an integer
func (v Value) Int64() int64 {
	i, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		return 0
	}
	return i
}

// Bool returns false for anything strconv.ParseBool rejects
func (v Value) Bool() bool {
	b, err := strconv.ParseBool(v.String())
	if err != nil {
		return false
	}
	return b
}

// Seconds interprets an integer value as a number of seconds
func (v Value) Seconds() time.Duration {
	return time.Duration(v.Int64()) * time.Second
}
