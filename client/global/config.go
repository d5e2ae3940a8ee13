/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/uconfig"
)

type ClientConfig struct {
	C  interfaces.Config     // Config object
	CC interfaces.Parameters // Client configuration
}

// Config loads the configuration from file, creating it with defaults if it
// does not exist. An empty file name returns an unbacked configuration.
func Config(file string) (*ClientConfig, error) {
	options := []func(*uconfig.UConfig) error{
		uconfig.WithSet(ConfigClientSet, clientDefaults),
	}
	if file != "" {
		options = append(options, uconfig.WithLoadOrCreate(file))
	}

	conf, err := uconfig.New(options...)
	if err != nil {
		return nil, err
	}

	c := &ClientConfig{C: conf, CC: conf.GetSet(ConfigClientSet)}

	if file != "" && c.CC.Get(ConfigStoreFile).String() == "" {
		c.CC.Set(ConfigStoreFile, filepath.Join(filepath.Dir(file), storeFileName(c.CC.Get(ConfigStoreType).String())))
		if err = c.C.Checkpoint(); err != nil {
			return nil, fmt.Errorf("unable to checkpoint config: %w", err)
		}
	}
	return c, nil
}

// DefaultConfigFile returns the config file in the per-user application
// directory, or an empty string if there is none
func DefaultConfigFile() string {
	dir := uconfig.UserDir(LogName)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, LogName+".json")
}

func storeFileName(storeType string) string {
	if storeType == StoreFile {
		return LogName + "-session.json"
	}
	return LogName + "-session.db"
}

// OpenStore opens the session store selected by the configuration. The
// returned function releases it.
func (c *ClientConfig) OpenStore(logger interfaces.Logger) (authstore.Store, func(), error) {
	storeType := strings.ToLower(c.CC.Get(ConfigStoreType).String())
	file := c.CC.Get(ConfigStoreFile).String()

	switch storeType {
	case StoreMemory:
		return authstore.NewMemory(), func() {}, nil
	case StoreBolt:
		if file == "" {
			return nil, nil, errors.New("store_file is required for the bolt store")
		}
		b, err := authstore.OpenBolt(file, logger)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case StoreFile:
		if file == "" {
			return nil, nil, errors.New("store_file is required for the file store")
		}
		f, err := authstore.OpenFile(file, logger)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store type %q", storeType)
}
