//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Code for windows
//go:build windows

package uemservice

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/windows/svc"
)

// run starts the service under the service manager, or as a console
// program stopped by Ctrl-C when started interactively
func (s *Service) run(ctx context.Context) error {
	isSvc, err := svc.IsWindowsService()
	if err != nil {
		return fmt.Errorf("unable to determine if running as a service: %w", err)
	}

	if !isSvc {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		return s.loop(ctx)
	}

	h := &handler{s: s, ctx: ctx}
	if err = svc.Run(s.ServiceName, h); err != nil {
		return fmt.Errorf("%s service failed: %v", s.ServiceName, err)
	}
	return h.err
}

type handler struct {
	s   *Service
	ctx context.Context
	err error
}

// Execute runs the Windows service
//
//goland:noinspection GoUnusedParameter
func (h *handler) Execute(args []string, req <-chan svc.ChangeRequest, status chan<- svc.Status) (svcSpecificEC bool, exitCode uint32) {
	const cmdsAccepted = svc.AcceptStop | svc.AcceptShutdown

	status <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- h.s.loop(ctx) }()

	status <- svc.Status{State: svc.Running, Accepts: cmdsAccepted}

	for {
		select {
		case c := <-req:
			switch c.Cmd {
			case svc.Interrogate:
				status <- c.CurrentStatus
			case svc.Stop, svc.Shutdown:
				status <- svc.Status{State: svc.StopPending}
				cancel()
				h.err = <-done
				return false, 0
			default:
			}
		case h.err = <-done:
			if h.err != nil {
				return false, 1
			}
			return false, 0
		}
	}
}
