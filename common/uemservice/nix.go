//go:build !windows

/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Code for operating systems other than windows

package uemservice

import (
	"context"
	"os/signal"
	"syscall"
)

// run the service until ctx ends or SIGINT or SIGTERM is received
func (s *Service) run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.loop(ctx)
}
