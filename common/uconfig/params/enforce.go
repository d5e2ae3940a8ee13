/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package params

import (
	"fmt"
	"strconv"
)

// enforceAny converts value to a Value for Set(). Empty strings fall back to
// the default and integers outside a non-zero min/max fall back to the default.
func enforceAny(value any, min int, max int, def Value) Value {
	switch v := value.(type) {
	case string:
		if v == "" {
			return def
		}
		return Value(v)
	case int:
		return enforceRange(int64(v), min, max, def)
	case int64:
		return enforceRange(v, min, max, def)
	case bool:
		return Value(strconv.FormatBool(v))
	default:
		return Value(fmt.Sprintf("%v", v))
	}
}

func enforceRange(v int64, min int, max int, def Value) Value {
	if min != 0 && v < int64(min) {
		return def
	}
	if max != 0 && v > int64(max) {
		return def
	}
	return Value(strconv.FormatInt(v, 10))
}

// enforce applies the default to an empty value and range checks integers
func enforce(e Element) Value {
	if e.Value == "" {
		return e.Default
	}

	if intValue, err := strconv.Atoi(string(e.Value)); err == nil {
		if e.Min != 0 && intValue < e.Min {
			return e.Default
		}
		if e.Max != 0 && intValue > e.Max {
			return e.Default
		}
	}
	return e.Value
}
