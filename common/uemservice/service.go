//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package uemservice runs a long-lived process: a start function, periodic
// tasks on a ticker, and a stop function when the process is told to exit
// by a signal, the Windows service manager or context cancellation.
package uemservice

import (
	"context"
	"errors"
	"time"

	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/null"
)

type Service struct {
	logger         interfaces.Logger
	ServiceName    string
	ServiceVersion string
	ServiceBuild   int
	TaskInterval   time.Duration
	StartFunc      func(context.Context, interfaces.Logger) error
	TasksFunc      func(interfaces.Logger)
	StopFunc       func(interfaces.Logger)
	SEid           uint32
}

// New returns a default Service
func New(options ...func(*Service) error) (*Service, error) {

	// Initialize the Service with default values
	s := &Service{
		logger:         null.Logger(),
		ServiceName:    "UEM",
		ServiceVersion: "unknown",
		TaskInterval:   time.Minute,
	}

	// Apply the options
	for _, op := range options {
		err := op(s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Run starts the service and blocks until it stops. It returns the start
// function's error, if any.
func (s *Service) Run(ctx context.Context) error {
	// run the os-specific function
	return s.run(ctx)
}

// loop is the os-independent body of the service
func (s *Service) loop(ctx context.Context) error {
	if s.StartFunc != nil {
		if err := s.StartFunc(ctx, s.logger); err != nil {
			s.logger.Errorf(s.SEid+4, "%s failed to start: %s", s.ServiceName, err.Error())
			return err
		}
	}

	s.logger.Infof(s.SEid+1, "%s %s (build %d) service started", s.ServiceName, s.ServiceVersion, s.ServiceBuild)
	s.logger.Debugf(s.SEid+1, "Debug logging enabled")

	ticker := time.NewTicker(s.TaskInterval)
	defer ticker.Stop()

	// Loop, call the TasksFunc, and wait for an exit request
	for {
		select {
		case <-ticker.C:
			if s.TasksFunc != nil {
				s.TasksFunc(s.logger)
			}
		case <-ctx.Done():
			s.logger.Infof(s.SEid+2, "%s %s (build %d) service stopping", s.ServiceName, s.ServiceVersion, s.ServiceBuild)
			if s.StopFunc != nil {
				s.StopFunc(s.logger)
			}
			s.logger.Infof(s.SEid+3, "%s %s (build %d) service stopped", s.ServiceName, s.ServiceVersion, s.ServiceBuild)
			return nil
		}
	}
}

func WithServiceName(name string) func(*Service) error {
	return func(s *Service) error {
		s.ServiceName = name
		return nil
	}
}

func WithServiceVersion(version string) func(*Service) error {
	return func(s *Service) error {
		s.ServiceVersion = version
		return nil
	}
}

func WithServiceBuild(build int) func(*Service) error {
	return func(s *Service) error {
		s.ServiceBuild = build
		return nil
	}
}

func WithLogger(logger interfaces.Logger) func(*Service) error {
	return func(s *Service) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		s.logger = logger
		return nil
	}
}

func WithTaskInterval(interval time.Duration) func(*Service) error {
	return func(s *Service) error {
		if interval <= 0 {
			return errors.New("task interval must be positive")
		}
		s.TaskInterval = interval
		return nil
	}
}

func WithStartFunc(f func(context.Context, interfaces.Logger) error) func(*Service) error {
	return func(s *Service) error {
		s.StartFunc = f
		return nil
	}
}

func WithTasksFunc(f func(interfaces.Logger)) func(*Service) error {
	return func(s *Service) error {
		s.TasksFunc = f
		return nil
	}
}

func WithStopFunc(f func(interfaces.Logger)) func(*Service) error {
	return func(s *Service) error {
		s.StopFunc = f
		return nil
	}
}

func WithSEid(seid uint32) func(*Service) error {
	return func(s *Service) error {
		s.SEid = seid
		return nil
	}
}
