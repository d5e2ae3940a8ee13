/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/UnifyEM/UEMSession/common/uconfig/params"
)

// WithSet registers a set and lets the caller declare its defaults and
// constraints before any file is loaded
func WithSet(name string, setup func(p *params.Params)) func(*UConfig) error {
	return func(c *UConfig) error {
		p := params.New()
		if setup != nil {
			setup(p)
		}
		c.Sets[name] = p
		return nil
	}
}

// WithLoad loads the named file and fails if it cannot be read
func WithLoad(filename string) func(*UConfig) error {
	return func(c *UConfig) error {
		return c.Load(filename)
	}
}

// WithLoadOrCreate loads the named file, creating it if it does not exist
func WithLoadOrCreate(filename string) func(*UConfig) error {
	return func(c *UConfig) error {
		err := c.Load(filename)
		if err == nil {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return c.Save(filename)
		}
		return err
	}
}

// WithFind loads the first of the listed files that exists
func WithFind(filenames []string) func(*UConfig) error {
	return func(c *UConfig) error {
		for _, filename := range filenames {
			if _, err := os.Stat(filename); err == nil {
				return c.Load(filename)
			}
		}
		return fmt.Errorf("no configuration file found")
	}
}
