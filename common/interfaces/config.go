/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package interfaces

import "time"

// Config is a file-backed collection of named parameter sets
type Config interface {
	Load(string) error
	Save(string) error
	Delete(string) error
	Checkpoint() error
	NewSet(string) Parameters
	GetSet(s string) Parameters
	Dump()
}

// Parameters is a single set of constrained key/value pairs
type Parameters interface {
	Exists(key string) bool
	Set(key string, value any)
	SetDefault(key string, value any)
	SetConstraint(key string, min, max int, def any)
	Delete(key string)
	Get(key string) ParameterValue
	GetMap() map[string]string
	GetStruct(key string, s any) error
	SetStruct(key string, s any) error
	Serialize() (string, error)
	Deserialize(data string) error
}

type ParameterValue interface {
	String() string
	Bytes() []byte
	Int() int
	Int64() int64
	Bool() bool
	Seconds() time.Duration
}
