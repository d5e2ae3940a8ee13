/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package autherr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionErrorUnwrapsToRefreshError(t *testing.T) {
	cause := &APIError{Code: 401, Details: "refresh session expired"}
	err := &SessionError{
		Operation: "verify-email",
		Cause:     &AuthError{Reason: ReasonRefreshFailed, Err: &RefreshError{Cause: cause}},
	}

	var re *RefreshError
	assert.True(t, errors.As(err, &re))

	var api *APIError
	assert.True(t, errors.As(err, &api))
	assert.Equal(t, 401, api.Code)

	assert.True(t, IsRefreshFailure(err))
	assert.Contains(t, err.Error(), "verify-email failed")
}

func TestIsRefreshFailure(t *testing.T) {
	assert.False(t, IsRefreshFailure(errors.New("connection refused")))
	assert.False(t, IsRefreshFailure(&AuthError{Reason: "other"}))
	assert.True(t, IsRefreshFailure(fmt.Errorf("wrapped: %w", &AuthError{Reason: ReasonRefreshFailed})))
}

func TestSentinelsThroughRefreshError(t *testing.T) {
	err := &RefreshError{Cause: ErrSessionReplaced}
	assert.ErrorIs(t, err, ErrSessionReplaced)
}
