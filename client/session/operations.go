/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"

	"github.com/UnifyEM/UEMSession/client/autherr"
	"github.com/UnifyEM/UEMSession/client/authstore"
	"github.com/UnifyEM/UEMSession/client/transport"
	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/schema"
)

// Operation names reported in SessionError
const (
	OpSignup         = "signup"
	OpLogin          = "login"
	OpLogout         = "logout"
	OpForgotPassword = "forgot-password"
	OpResetPassword  = "reset-password"
	OpVerifyEmail    = "verify-email"
)

var errIncompleteResponse = errors.New("server response is missing the credential or principal")

// Signup registers a new account and starts a session for it
func (s *Session) Signup(ctx context.Context, username, email, password string) error {
	request := schema.SignupRequest{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	var resp schema.APIAuthResponse
	if err := s.PostJSON(transport.Anonymous(ctx), schema.EndpointRegister, request, &resp); err != nil {
		return s.fail(OpSignup, err)
	}
	if err := s.begin(resp); err != nil {
		return s.fail(OpSignup, err)
	}

	s.logger.Info(8511, "signup successful", fields.NewFields(fields.NewField("id", resp.User.ID)))
	return nil
}

// Login authenticates with an email address and password and replaces any
// existing session
func (s *Session) Login(ctx context.Context, email, password string) error {
	request := schema.LoginRequest{Email: foldEmail(email), Password: password}

	var resp schema.APIAuthResponse
	if err := s.PostJSON(transport.Anonymous(ctx), schema.EndpointLogin, request, &resp); err != nil {
		return s.fail(OpLogin, err)
	}
	if err := s.begin(resp); err != nil {
		return s.fail(OpLogin, err)
	}

	s.logger.Info(8512, "login successful", fields.NewFields(
		fields.NewField("id", resp.User.ID),
		fields.NewField("role", resp.User.Role)))
	return nil
}

// Logout tells the server to end the refresh session and then clears all
// local state. Local state is cleared even when the server call fails, in
// which case the failure is still returned.
func (s *Session) Logout(ctx context.Context) error {
	netErr := s.PostJSON(transport.Anonymous(ctx), schema.EndpointLogout, struct{}{}, nil)
	if netErr != nil {
		s.logger.Warning(8513, "logout request failed, clearing local session anyway", fields.NewFields().AppendError(netErr))
	}

	clearErr := s.coordinator.Replace(s.store.ClearAll)
	s.Restore()

	if err := errors.Join(netErr, clearErr); err != nil {
		return &autherr.SessionError{Operation: OpLogout, Cause: err}
	}

	s.logger.Info(8514, "logout successful", nil)
	return nil
}

// ForgotPassword asks the server to send a reset token to email
func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	request := schema.EmailRequest{Email: foldEmail(email)}
	if err := s.PostJSON(transport.Anonymous(ctx), schema.EndpointForgotPassword, request, nil); err != nil {
		return s.fail(OpForgotPassword, err)
	}
	return nil
}

// ResetPassword sets a new password using a token from ForgotPassword. It
// does not start a session.
func (s *Session) ResetPassword(ctx context.Context, resetToken, password string) error {
	if resetToken == "" {
		return &autherr.SessionError{Operation: OpResetPassword, Cause: errors.New("reset token is empty")}
	}

	endpoint := strings.Replace(schema.EndpointResetPassword, "{token}", url.PathEscape(resetToken), 1)
	request := schema.ResetPasswordRequest{Password: password}
	if err := s.PostJSON(transport.Anonymous(ctx), endpoint, request, nil); err != nil {
		return s.fail(OpResetPassword, err)
	}
	return nil
}

// VerifyEmail submits a verification code for the signed in user and
// updates the principal and role. The credential is not rotated.
func (s *Session) VerifyEmail(ctx context.Context, code string) error {
	var resp schema.APIAuthResponse
	if err := s.PostJSON(ctx, schema.EndpointVerifyEmail, schema.VerifyEmailRequest{Code: code}, &resp); err != nil {
		return s.fail(OpVerifyEmail, err)
	}
	if resp.User == nil {
		return s.fail(OpVerifyEmail, errIncompleteResponse)
	}

	principal, err := json.Marshal(resp.User)
	if err != nil {
		return s.fail(OpVerifyEmail, err)
	}

	// The session may have ended while the request was in flight
	err = s.coordinator.Locked(func() error {
		if _, ok := s.store.Get(authstore.SlotCredential); !ok {
			return autherr.ErrNoCredential
		}
		if current := s.State().Principal; current != nil && current.ID != resp.User.ID {
			return fmt.Errorf("verified principal %s does not match the session", resp.User.ID)
		}
		return s.store.Update(func(w authstore.Writer) error {
			if err := w.Set(authstore.SlotPrincipal, string(principal)); err != nil {
				return err
			}
			if err := w.Set(authstore.SlotRole, resp.User.Role); err != nil {
				return err
			}
			return w.Set(authstore.SlotAuthenticated, "true")
		})
	})
	if err != nil {
		return s.fail(OpVerifyEmail, err)
	}

	s.Restore()
	s.logger.Info(8515, "email verified", fields.NewFields(
		fields.NewField("id", resp.User.ID),
		fields.NewField("role", resp.User.Role)))
	return nil
}

// begin stores a new session from an auth response in a single write
func (s *Session) begin(resp schema.APIAuthResponse) error {
	if resp.AccessToken == "" || resp.User == nil {
		return errIncompleteResponse
	}

	if _, err := s.codec.Decode(resp.AccessToken); err != nil {
		s.logger.Warning(8516, "server issued a credential that cannot be decoded", fields.NewFields().AppendError(err))
	}

	principal, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}

	err = s.coordinator.Replace(func() error {
		return s.store.Update(func(w authstore.Writer) error {
			if err := w.Set(authstore.SlotCredential, resp.AccessToken); err != nil {
				return err
			}
			if err := w.Set(authstore.SlotPrincipal, string(principal)); err != nil {
				return err
			}
			if err := w.Set(authstore.SlotRole, resp.User.Role); err != nil {
				return err
			}
			return w.Set(authstore.SlotAuthenticated, "true")
		})
	})
	if err != nil {
		return fmt.Errorf("unable to store session: %w", err)
	}

	s.Restore()
	return nil
}

func (s *Session) fail(operation string, err error) error {
	logInfo := fields.NewFields(fields.NewField("operation", operation)).AppendError(err)
	var apiErr *autherr.APIError
	if errors.As(err, &apiErr) {
		logInfo.AppendKV("status", apiErr.Code)
	}
	s.logger.Error(8517, "session operation failed", logInfo)

	if autherr.IsRefreshFailure(err) {
		s.Restore()
	}
	return &autherr.SessionError{Operation: operation, Cause: err}
}

func foldEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
