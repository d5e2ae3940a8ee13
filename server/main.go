//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnifyEM/UEMSession/common"
	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/uconfig"
	"github.com/UnifyEM/UEMSession/common/ulogger"
	"github.com/UnifyEM/UEMSession/server/devserver"
	"github.com/UnifyEM/UEMSession/server/global"
)

// @title UEMSession development auth server
// @version 0.1
// @description Issues access tokens and cookie-backed refresh sessions for local testing
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if len(os.Args) > 1 {
		switch strings.ToLower(os.Args[1]) {
		case "version":
			common.Banner(os.Stdout, global.Description, global.Version, global.Build)
			os.Exit(0)
		case "run":
		default:
			usage()
			os.Exit(1)
		}
	}

	// An optional second argument names the configuration file
	file := defaultConfigFile()
	if len(os.Args) > 2 {
		file = os.Args[2]
	}
	os.Exit(run(file))
}

func run(file string) int {
	conf, err := global.Config(file)
	if err != nil {
		fmt.Printf("Fatal config error: %v\n", err)
		return 1
	}

	// Create a logger using the loaded configuration
	logger, err := ulogger.New(
		ulogger.WithPrefix(global.LogName),
		ulogger.WithLogFile(conf.SC.Get(global.ConfigLogFile).String()),
		ulogger.WithConsole(conf.SC.Get(global.ConfigLogStdout).Bool()),
		ulogger.WithRetention(conf.SC.Get(global.ConfigLogRetention).Int()),
		ulogger.WithDebug(true))
	if err != nil {
		fmt.Printf("error creating logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	logStart(logger, file)

	s, err := devserver.New(conf, logger)
	if err != nil {
		logger.Errorf(8691, "unable to create server: %s", err.Error())
		return 1
	}

	if err = s.Run(context.Background()); err != nil {
		logger.Errorf(8692, "server failed: %s", err.Error())
		return 1
	}
	return 0
}

func logStart(logger interfaces.Logger, file string) {
	logger.Infof(8690, "%s %s (build %d) using configuration %s", global.Description, global.Version, global.Build, file)
}

func defaultConfigFile() string {
	dir := uconfig.UserDir(global.LogName)
	if dir == "" {
		return global.LogName + ".json"
	}
	return filepath.Join(dir, global.LogName+".json")
}

func usage() {
	fmt.Printf("Usage: %s <run [config file] | version>\n", filepath.Base(os.Args[0]))
}
