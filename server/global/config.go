/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"

	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/uconfig"
)

type ServerConfig struct {
	C  interfaces.Config     // Config object
	SC interfaces.Parameters // Server configuration
	SP interfaces.Parameters // Server private configuration
}

// Config loads the configuration from file, creating it with defaults if it
// does not exist. An empty file name returns an unbacked configuration that
// is never written, which is what tests and the embedded CLI server use.
func Config(file string) (*ServerConfig, error) {
	options := []func(*uconfig.UConfig) error{
		uconfig.WithSet(ConfigServerSet, serverDefaults),
		uconfig.WithSet(ConfigPrivate, privateDefaults),
	}
	if file != "" {
		options = append(options, uconfig.WithLoadOrCreate(file))
	}

	conf, err := uconfig.New(options...)
	if err != nil {
		return nil, err
	}

	c := &ServerConfig{
		C:  conf,
		SC: conf.GetSet(ConfigServerSet),
		SP: conf.GetSet(ConfigPrivate),
	}

	// Make sure there is a signing key
	if c.SP.Get(ConfigJWTKey).String() == "" {
		key, err := GenerateToken()
		if err != nil {
			return nil, fmt.Errorf("unable to generate JWT key: %w", err)
		}
		c.SP.Set(ConfigJWTKey, key)
	}

	// Default the database to live next to the config file
	if file != "" && c.SC.Get(ConfigDBPath).String() == "" {
		c.SC.Set(ConfigDBPath, filepath.Join(filepath.Dir(file), LogName+".db"))
	}

	if file != "" {
		if err = c.C.Checkpoint(); err != nil {
			return nil, fmt.Errorf("unable to checkpoint config: %w", err)
		}
	}
	return c, nil
}

// GenerateToken creates a new random token
func GenerateToken() (string, error) {
	token := make([]byte, TokenLength)
	if _, err := io.ReadFull(rand.Reader, token); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(token), nil
}
