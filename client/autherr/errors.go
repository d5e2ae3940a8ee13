/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package autherr defines the error taxonomy shared by the session client.
// Every failure ends in "the user must re-authenticate"; none is fatal.
package autherr

import (
	"errors"
	"fmt"
)

// ReasonRefreshFailed is the AuthError reason used when a credential
// could not be refreshed
const ReasonRefreshFailed = "refresh-failed"

var (
	// ErrNoCredential is returned when an operation needs a stored credential
	ErrNoCredential = errors.New("no credential")

	// ErrSessionReplaced is the RefreshError cause when the session was
	// replaced or cleared while the exchange was in flight
	ErrSessionReplaced = errors.New("session replaced during refresh")
)

// DecodeError reports a malformed credential. Callers treat it as "expired".
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credential decode failed: %s: %s", e.Reason, e.Err.Error())
	}
	return fmt.Sprintf("credential decode failed: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RefreshError reports a failed refresh exchange. By the time it is
// returned the session has been terminated.
type RefreshError struct {
	Cause error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("credential refresh failed: %s", e.Cause)
}

func (e *RefreshError) Unwrap() error { return e.Cause }

// AuthError reports that a request could not proceed for lack of a usable credential
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authorization error (%s): %s", e.Reason, e.Err.Error())
	}
	return fmt.Sprintf("authorization error (%s)", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// SessionError reports a failed facade operation
type SessionError struct {
	Operation string
	Cause     error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Cause)
}

func (e *SessionError) Unwrap() error { return e.Cause }

// APIError is a non-2xx response from the server, decoded from the
// standard status/code/details envelope when possible
type APIError struct {
	Code    int
	Status  string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Details)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// IsRefreshFailure reports whether err was caused by a failed refresh,
// whether it surfaced as a RefreshError or an AuthError
func IsRefreshFailure(err error) bool {
	var re *RefreshError
	if errors.As(err, &re) {
		return true
	}
	var ae *AuthError
	return errors.As(err, &ae) && ae.Reason == ReasonRefreshFailed
}
