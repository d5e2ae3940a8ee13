/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// loadFile merges the file contents into the existing sets so that
// constraints and defaults registered before loading are preserved
func (c *UConfig) loadFile() error {
	data, err := os.ReadFile(c.file)
	if err != nil {
		return fmt.Errorf("error reading file %s: %w", c.file, err)
	}

	var onDisk struct {
		Sets map[string]map[string]string `json:"sets"`
	}
	if err = json.Unmarshal(data, &onDisk); err != nil {
		return fmt.Errorf("deserialization error: %w", err)
	}

	for name, values := range onDisk.Sets {
		set := c.NewSet(name)
		for k, v := range values {
			set.Set(k, v)
		}
	}
	return nil
}

// saveFile writes the current values (not constraints) to disk.
// The file is written to a temporary name and renamed into place so
// that a crash never leaves a truncated configuration behind.
func (c *UConfig) saveFile() error {
	onDisk := struct {
		Sets map[string]map[string]string `json:"sets"`
	}{Sets: make(map[string]map[string]string)}

	for name, set := range c.Sets {
		onDisk.Sets[name] = set.GetMap()
	}

	data, err := json.MarshalIndent(onDisk, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode to JSON: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(c.file), 0700); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}

	tmp := c.file + ".tmp"
	if err = os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}
	if err = os.Rename(tmp, c.file); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("could not replace file: %w", err)
	}
	return nil
}

func (c *UConfig) deleteFile() error {
	err := os.Remove(c.file)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dump the configuration to the console
func (c *UConfig) Dump() {
	fmt.Printf("Current configuration:\n")
	for name, set := range c.Sets {
		data, err := json.MarshalIndent(set.GetMap(), "", "  ")
		if err != nil {
			fmt.Printf("Serialization error: %s\n", err.Error())
			return
		}
		fmt.Printf("%s: %s\n", name, string(data))
	}
}
