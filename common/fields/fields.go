/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package fields provides the structured key/value context attached to log entries
package fields

import (
	"fmt"
	"strings"

	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// Ensure Fields implements interfaces.Fields
var _ interfaces.Fields = (*Fields)(nil)

type Fields struct {
	Fields []Field
}

type Field struct {
	K string
	V any
}

// Name returns the key of the field to implement the NVPair interface
func (f Field) Name() string {
	return f.K
}

// Value returns the value of the field to implement the NVPair interface
func (f Field) Value() any {
	return f.V
}

func NewFields(fields ...Field) *Fields {
	return &Fields{Fields: fields}
}

func NewField(key string, value any) Field {
	return Field{K: key, V: value}
}

// Append adds fields and returns the receiver so calls can be chained
func (f *Fields) Append(fields ...Field) *Fields {
	f.Fields = append(f.Fields, fields...)
	return f
}

func (f *Fields) AppendKV(key string, value any) *Fields {
	return f.Append(Field{K: key, V: value})
}

// AppendError adds an "error" field unless err is nil
func (f *Fields) AppendError(err error) *Fields {
	if err == nil {
		return f
	}
	return f.Append(Field{K: "error", V: err.Error()})
}

// Clone returns a copy that can be extended without affecting the original
func (f *Fields) Clone() *Fields {
	if f == nil {
		return NewFields()
	}
	c := make([]Field, len(f.Fields))
	copy(c, f.Fields)
	return &Fields{Fields: c}
}

// ToText renders the fields as key=value pairs. Values containing
// whitespace are quoted so the line stays parseable.
func (f *Fields) ToText() string {
	if f == nil || len(f.Fields) == 0 {
		return ""
	}

	var b strings.Builder
	for i, field := range f.Fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		v := fmt.Sprintf("%v", field.V)
		if strings.ContainsAny(v, " \t\r\n") {
			v = fmt.Sprintf("%q", v)
		}
		b.WriteString(field.K)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}

// ToPairs implements the ToPairs method
func (f *Fields) ToPairs() []interfaces.NVPair {
	if f == nil {
		return nil
	}
	pairs := make([]interfaces.NVPair, len(f.Fields))
	for i, field := range f.Fields {
		pairs[i] = field
	}
	return pairs
}
