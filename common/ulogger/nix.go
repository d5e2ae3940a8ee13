//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Code for operating systems other than windows
//go:build !windows

package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// ULogger is different for each OS because of the different sinks available
type ULogger struct {
	mu               sync.Mutex
	fileHandle       *os.File
	console          io.Writer
	logfile          string
	logConsole       bool
	logWindowsEvents bool // Ignored on non-Windows systems
	debug            bool
	prefix           string
	retainDays       int
	currentLogDate   string
}

func (u *ULogger) osNew() (*ULogger, error) {
	if u.logfile == "" {
		// If no log file is specified, force console logging
		u.logConsole = true
		return u, nil
	}

	u.logfile = filepath.Clean(u.logfile)
	if err := os.MkdirAll(filepath.Dir(u.logfile), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Rotation compares against the date of the existing file, if any
	if fileInfo, err := os.Stat(u.logfile); err == nil {
		u.currentLogDate = fileInfo.ModTime().Format("20060102")
	} else {
		u.currentLogDate = time.Now().Format("20060102")
	}

	fh, err := os.OpenFile(u.logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		// If unable to log to file, force console logging
		u.fileHandle = nil
		u.logConsole = true
		return u, nil
	}
	u.fileHandle = fh
	return u, nil
}

// Close flushes and closes the log file
func (u *ULogger) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.fileHandle != nil {
		_ = u.fileHandle.Sync()
		_ = u.fileHandle.Close()
		u.fileHandle = nil
	}
}

func (u *ULogger) formatMessage(eid uint32, level string, message string, fields interfaces.Fields) string {
	msg := fmt.Sprintf("%s %s [%s] %04d %s",
		time.Now().Format("2006-01-02 15:04:05"),
		u.prefix, level, eid, message)

	if fields != nil {
		if text := fields.ToText(); text != "" {
			msg += ": " + text
		}
	}
	return msg
}

func (u *ULogger) writeLog(eid uint32, level string, message string, fields interfaces.Fields) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.rotateLogs(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "log rotation error: %s\n", err.Error())
	}

	tmp := u.formatMessage(eid, level, message, fields) + "\n"

	if u.fileHandle != nil {
		_, _ = u.fileHandle.WriteString(tmp)
	}

	if u.logConsole {
		_, _ = io.WriteString(u.console, tmp)
	}
}

func (u *ULogger) Debug(eid uint32, message string, fields interfaces.Fields) {
	if u.debug {
		u.writeLog(eid, "DEBUG", message, fields)
	}
}

func (u *ULogger) Info(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "INFO", message, fields)
}

func (u *ULogger) Warning(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "WARNING", message, fields)
}

func (u *ULogger) Error(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "ERROR", message, fields)
}

func (u *ULogger) Debugf(eid uint32, format string, v ...any) {
	if u.debug {
		u.writeLog(eid, "DEBUG", fmt.Sprintf(format, v...), nil)
	}
}

func (u *ULogger) Infof(eid uint32, format string, v ...any) {
	u.writeLog(eid, "INFO", fmt.Sprintf(format, v...), nil)
}

func (u *ULogger) Warningf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "WARNING", fmt.Sprintf(format, v...), nil)
}

func (u *ULogger) Errorf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "ERROR", fmt.Sprintf(format, v...), nil)
}
