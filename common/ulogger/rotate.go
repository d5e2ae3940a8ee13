/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package ulogger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// rotateLogs renames the log file once per day and prunes old copies.
// The caller must hold u.mu.
func (u *ULogger) rotateLogs() error {
	if u.logfile == "" {
		return nil
	}

	currentDate := time.Now().Format("20060102")
	if u.currentLogDate == currentDate {
		return nil
	}

	previousLogDate := u.currentLogDate
	if u.fileHandle != nil {
		_ = u.fileHandle.Sync()
		_ = u.fileHandle.Close()
		u.fileHandle = nil
	}

	rotated := fmt.Sprintf("%s-%s", u.logfile, previousLogDate)
	if err := os.Rename(u.logfile, rotated); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	fh, err := os.OpenFile(u.logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		u.logConsole = true
		return fmt.Errorf("failed to open new log file after rotating: %w", err)
	}
	u.fileHandle = fh
	u.currentLogDate = currentDate

	if err = u.deleteOldLogs(); err != nil {
		return fmt.Errorf("failed to delete old log files: %w", err)
	}
	return nil
}

// deleteOldLogs deletes rotated log files older than retainDays
func (u *ULogger) deleteOldLogs() error {
	if u.retainDays <= 1 {
		return nil
	}

	cutoffDate := time.Now().AddDate(0, 0, -u.retainDays).Format("20060102")

	matches, err := filepath.Glob(u.logfile + "-*")
	if err != nil {
		return fmt.Errorf("failed to list log files: %w", err)
	}

	for _, name := range matches {
		fileDate := strings.TrimPrefix(name, u.logfile+"-")
		if len(fileDate) != len(cutoffDate) || fileDate >= cutoffDate {
			continue
		}
		if err = os.Remove(name); err != nil {
			return fmt.Errorf("failed to delete old log file: %w", err)
		}
	}
	return nil
}
