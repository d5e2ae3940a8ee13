/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package params implements a simple key/value store with constraints that can be serialized to JSON.
package params

import (
	"encoding/json"
	"fmt"

	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// Ensure Params implements the Parameters interface
var _ interfaces.Parameters = (*Params)(nil)

type Element struct {
	Value   Value `json:"value"`
	Default Value `json:"default"`
	Min     int   `json:"min"`
	Max     int   `json:"max"`
}

type Params struct {
	Data map[string]Element
}

// New returns an initialized Params object
func New() *Params {
	return &Params{Data: make(map[string]Element)}
}

// Exists checks if a key has a non-empty value
func (p *Params) Exists(key string) bool {
	element, ok := p.Data[key]
	return ok && element.Value != ""
}

// Set a key/value pair, enforcing any constraints
func (p *Params) Set(key string, value any) {
	element := p.Data[key]
	element.Value = enforceAny(value, element.Min, element.Max, element.Default)
	p.Data[key] = element
}

// SetDefault sets a default value for a key
func (p *Params) SetDefault(key string, value any) {
	element := p.Data[key]
	element.Default = Value(fmt.Sprintf("%v", value))
	p.Data[key] = element
}

// SetConstraint sets a min and max constraint and a default for a key
func (p *Params) SetConstraint(key string, min, max int, def any) {
	element := p.Data[key]
	element.Default = Value(fmt.Sprintf("%v", def))
	element.Min = min
	element.Max = max
	p.Data[key] = element
}

// Delete the value for a key, leaving constraints in place
func (p *Params) Delete(key string) {
	element, ok := p.Data[key]
	if !ok {
		return
	}
	element.Value = ""
	p.Data[key] = element
}

// Get a Value, applying the default and range constraints
func (p *Params) Get(key string) interfaces.ParameterValue {
	element, ok := p.Data[key]
	if !ok {
		return NewValue()
	}
	return enforce(element)
}

// GetMap converts the Params object to a map[string]string of raw values.
// Defaults are not materialized so they can change between releases.
func (p *Params) GetMap() map[string]string {
	r := make(map[string]string)
	for key, element := range p.Data {
		if element.Value != "" {
			r[key] = element.Value.String()
		}
	}
	return r
}

// GetStruct deserializes the JSON value stored under key into s
func (p *Params) GetStruct(key string, s any) error {
	value := p.Get(key)
	if value.String() == "" {
		return fmt.Errorf("value for key %s is empty", key)
	}

	if err := json.Unmarshal(value.Bytes(), s); err != nil {
		return fmt.Errorf("failed to deserialize value for key %s: %w", key, err)
	}
	return nil
}

// SetStruct serializes s to JSON and stores it under key
func (p *Params) SetStruct(key string, s any) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize value for key %s: %w", key, err)
	}
	p.Set(key, string(data))
	return nil
}

// Serialize the keys and values to a JSON object
func (p *Params) Serialize() (string, error) {
	data, err := json.Marshal(p.GetMap())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Deserialize merges a JSON object produced by Serialize
func (p *Params) Deserialize(data string) error {
	tempMap := make(map[string]string)
	if err := json.Unmarshal([]byte(data), &tempMap); err != nil {
		return err
	}
	for key, value := range tempMap {
		// Use Set() for constraint enforcement
		p.Set(key, value)
	}
	return nil
}
