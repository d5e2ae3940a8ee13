/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package client opens the persisted session used by every command
package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/UnifyEM/UEMSession/client/global"
	"github.com/UnifyEM/UEMSession/client/session"
	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/null"
	"github.com/UnifyEM/UEMSession/common/ulogger"
)

// Set from the command line
var (
	ConfigFile string
	ServerURL  string
)

// Client is an open session and the resources behind it
type Client struct {
	*session.Session
	Conf   *global.ClientConfig
	logger interfaces.Logger
	closer []func()
}

// LoadEnv loads environment variables from ~/.uemsession if it exists
func LoadEnv() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(homeDir, global.EnvFile))
}

// Open loads the configuration, opens the session store and restores the
// session from it
func Open() (*Client, error) {
	LoadEnv()

	file := ConfigFile
	if file == "" {
		file = os.Getenv(global.EnvConfig)
	}
	if file == "" {
		file = global.DefaultConfigFile()
	}
	if file == "" {
		return nil, errors.New("no configuration directory is available, use --config")
	}

	conf, err := global.Config(file)
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}

	// Command line beats the environment, which beats the configuration file
	if env := os.Getenv(global.EnvServer); env != "" {
		conf.CC.Set(global.ConfigServerURL, env)
	}
	if ServerURL != "" {
		conf.CC.Set(global.ConfigServerURL, ServerURL)
	}

	c := &Client{Conf: conf, logger: null.Logger()}

	logFile := conf.CC.Get(global.ConfigLogFile).String()
	debug := conf.CC.Get(global.ConfigDebug).Bool()
	if logFile != "" || debug {
		logger, err := ulogger.New(
			ulogger.WithPrefix(global.LogName),
			ulogger.WithLogFile(logFile),
			ulogger.WithConsole(debug),
			ulogger.WithDebug(debug))
		if err != nil {
			return nil, fmt.Errorf("error creating logger: %w", err)
		}
		c.logger = logger
		c.closer = append(c.closer, logger.Close)
	}

	store, closeStore, err := conf.OpenStore(c.logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("unable to open session store: %w", err)
	}
	c.closer = append(c.closer, closeStore)

	c.Session, err = session.New(
		session.WithServerURL(conf.CC.Get(global.ConfigServerURL).String()),
		session.WithRefreshBase(conf.CC.Get(global.ConfigRefreshBase).String()),
		session.WithStore(store),
		session.WithLeeway(conf.CC.Get(global.ConfigLeeway).Seconds()),
		session.WithRefreshTimeout(conf.CC.Get(global.ConfigRefreshTimeout).Seconds()),
		session.WithLogger(c.logger))
	if err != nil {
		c.Close()
		return nil, err
	}

	c.logger.Debugf(8701, "session opened: server=%s config=%s", conf.CC.Get(global.ConfigServerURL).String(), file)
	return c, nil
}

// Close releases the store and the logger, in reverse order of opening
func (c *Client) Close() {
	for i := len(c.closer) - 1; i >= 0; i-- {
		c.closer[i]()
	}
	c.closer = nil
}
