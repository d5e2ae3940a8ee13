//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package data implements the development server's account and session logic
package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/text/cases"

	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/server/db"
	"github.com/UnifyEM/UEMSession/server/global"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrSessionInvalid = errors.New("refresh session invalid or expired")
	ErrTicketInvalid  = errors.New("ticket invalid or expired")
	ErrUserExists     = db.ErrUserExists
)

type Data struct {
	logger      interfaces.Logger
	database    *db.DB
	jwtKey      []byte
	hashCost    int
	accessLife  atomic.Int64 // nanoseconds, may be changed while serving
	refreshLife time.Duration
	ticketLife  time.Duration
	tempDir     string
}

// New opens the database named in the configuration. If none is configured
// a temporary database is created and removed again by Close.
func New(conf *global.ServerConfig, logger interfaces.Logger, options ...func(*Data) error) (*Data, error) {
	d := &Data{
		logger:      logger,
		jwtKey:      conf.SP.Get(global.ConfigJWTKey).Bytes(),
		hashCost:    db.DefaultCost,
		refreshLife: conf.SC.Get(global.ConfigRefreshLife).Seconds(),
		ticketLife:  conf.SC.Get(global.ConfigTicketLife).Seconds(),
	}
	d.accessLife.Store(int64(conf.SC.Get(global.ConfigAccessTokenLife).Seconds()))

	if len(d.jwtKey) == 0 {
		return nil, errors.New("JWT key missing from configuration")
	}

	for _, option := range options {
		if err := option(d); err != nil {
			return nil, err
		}
	}

	dbPath := conf.SC.Get(global.ConfigDBPath).String()
	if dbPath == "" {
		dir, err := os.MkdirTemp("", global.LogName+"-*")
		if err != nil {
			return nil, fmt.Errorf("unable to create temporary database directory: %w", err)
		}
		d.tempDir = dir
		dbPath = filepath.Join(dir, strings.ToLower(global.Name)+".db")
	}

	database, err := db.Open(dbPath, logger)
	if err != nil {
		d.removeTemp()
		return nil, fmt.Errorf("unable to open or create database: %w", err)
	}
	d.database = database
	return d, nil
}

// WithHashCost sets the scrypt cost used for new password hashes
func WithHashCost(cost int) func(*Data) error {
	return func(d *Data) error {
		if cost <= 1 || cost&(cost-1) != 0 {
			return fmt.Errorf("hash cost must be a power of two greater than 1")
		}
		d.hashCost = cost
		return nil
	}
}

// Close anything data-related that requires it
func (d *Data) Close() {
	if d == nil {
		return
	}
	if d.database != nil {
		d.database.Close()
	}
	d.removeTemp()
}

func (d *Data) removeTemp() {
	if d.tempDir != "" {
		_ = os.RemoveAll(d.tempDir)
	}
}

// SetAccessLife changes the lifetime of access tokens issued from now on.
// A negative lifetime issues tokens that are already expired.
func (d *Data) SetAccessLife(life time.Duration) {
	d.accessLife.Store(int64(life))
}

// Prune removes expired refresh sessions and tickets
func (d *Data) Prune() (int, error) {
	return d.database.PruneExpired(time.Now())
}

// userKey normalizes an email address for use as a database key
func userKey(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// Principal converts a stored user to its wire form
func Principal(u db.UserRecord) schema.Principal {
	return schema.Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Verified: u.Verified,
	}
}
