/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package ulogger

import (
	"fmt"
	"io"
	"os"

	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// This package implements interfaces.LogCloser
var _ interfaces.LogCloser = (*ULogger)(nil)

// Option is a function that configures a ULogger
type Option func(*ULogger) error

// New creates a new instance of ULogger with the provided options
func New(options ...Option) (interfaces.LogCloser, error) {
	u := &ULogger{retainDays: 30, console: os.Stderr}

	for _, option := range options {
		if err := option(u); err != nil {
			return nil, err
		}
	}

	// Call the OS-specific constructor
	return u.osNew()
}

// WithPrefix sets a process name or similar short identifier
func WithPrefix(prefix string) Option {
	return func(u *ULogger) error {
		u.prefix = prefix
		return nil
	}
}

// WithLogFile sets the log file
func WithLogFile(logfile string) Option {
	return func(u *ULogger) error {
		u.logfile = logfile
		return nil
	}
}

// WithConsole enables or disables logging to the console writer
func WithConsole(enabled bool) Option {
	return func(u *ULogger) error {
		u.logConsole = enabled
		return nil
	}
}

// WithConsoleWriter replaces the console writer, which defaults to stderr
// so that log lines do not mix with command output
func WithConsoleWriter(w io.Writer) Option {
	return func(u *ULogger) error {
		if w == nil {
			return fmt.Errorf("console writer is nil")
		}
		u.console = w
		return nil
	}
}

// WithWindowsEvents enables or disables logging to the windows event log
func WithWindowsEvents(logWindowsEvents bool) Option {
	return func(u *ULogger) error {
		u.logWindowsEvents = logWindowsEvents
		return nil
	}
}

// WithDebug enables or disables debug logging
func WithDebug(debug bool) Option {
	return func(u *ULogger) error {
		u.debug = debug
		return nil
	}
}

// WithRetention sets the number of days to retain logs
func WithRetention(retainDays int) Option {
	return func(u *ULogger) error {
		u.retainDays = retainDays
		return nil
	}
}
